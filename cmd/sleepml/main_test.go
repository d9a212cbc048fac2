package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/artifact"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
)

const rawCSV = `Person ID,Gender,Age,Occupation,Sleep Duration,Quality of Sleep,Physical Activity Level,Stress Level,BMI Category,Blood Pressure,Heart Rate,Daily Steps,Sleep Disorder
1,Male,27,Software Engineer,7.8,8,60,3,Normal,120/80,65,8000,
2,Female,32,Doctor,7.6,8,55,4,Normal Weight,118/76,68,7500,
3,Male,29,Teacher,,9,65,3,Normal,121/79,64,8200,None
4,Female,35,Nurse,7.5,8,58,4,Normal Weight,119/78,66,7800,
5,Male,31,,7.7,8,62,3,Normal,120/81,67,8100,None
6,Female,52,Nurse,5.9,4,30,8,Obese,140/95,85,3000,Insomnia
7,Male,49,Salesperson,6.0,5,32,7,Overweight,139/91,84,3300,Sleep Apnea
8,Female,55,Teacher,5.8,4,28,8,Obese,142/97,86,2800,Insomnia
9,Male,50,Lawyer,6.1,5,35,7,Overweight,138/90,84,3500,Sleep Apnea
10,Female,53,Accountant,5.7,4,29,8,Obese,141/96,85,2900,Insomnia
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := newCLI()
	t.Cleanup(func() { cli.Close() })
	root := cli.rootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCleanThenTrain(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.csv")
	if err := os.WriteFile(raw, []byte(rawCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	dataDir := filepath.Join(dir, "data")
	if err := os.Mkdir(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cleaned := filepath.Join(dataDir, "sleep_data.csv")

	if _, err := execute(t, "clean", "--input", raw, "--output", cleaned); err != nil {
		t.Fatal(err)
	}
	table, _, err := dataprep.Load(cleaned)
	if err != nil {
		t.Fatal(err)
	}
	bmi, ok := table.Col("bmi_category")
	if !ok {
		t.Fatalf("cleaned columns = %v", table.Names())
	}
	for _, v := range bmi.Strings {
		if v == "Normal Weight" {
			t.Error("Normal Weight survived cleaning")
		}
	}
	if occ, _ := table.Col("occupation"); occ.Strings[4] != "Missing" {
		t.Errorf("occupation[4] = %q, want Missing", occ.Strings[4])
	}

	configPath := filepath.Join(dir, "train.yaml")
	logFile := filepath.Join(dir, "train.log")
	conf := "model_type: svm\nplot: false\nlog:\n  level: debug\n  file: " + logFile + "\n"
	if err := os.WriteFile(configPath, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}
	modelDir := filepath.Join(dir, "model")
	_, err = execute(t, "train",
		"--config", configPath,
		"--train", dataDir,
		"--model-dir", modelDir,
		"--model_type", "random_forest",
		"--n_estimators", "5",
		"--no-plot",
	)
	if err != nil {
		t.Fatal(err)
	}
	b, err := artifact.Load(modelDir)
	if err != nil {
		t.Fatal(err)
	}
	if b.Meta == nil || b.Meta.ModelType != "random_forest" || b.Meta.Hyperparameters.NEstimators != 5 {
		t.Errorf("run metadata = %+v", b.Meta)
	}
	if _, err := os.Stat(filepath.Join(modelDir, "confusion_matrix.png")); !os.IsNotExist(err) {
		t.Errorf("chart written despite --no-plot: %v", err)
	}
	logged, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(logged, []byte(`"msg":"training complete"`)) {
		t.Errorf("log file lacks the completion record:\n%s", logged)
	}
}

func TestCleanPreview(t *testing.T) {
	raw := filepath.Join(t.TempDir(), "raw.csv")
	if err := os.WriteFile(raw, []byte(rawCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "clean", "--input", raw, "--preview", "2")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("preview has %d lines, want header + 2:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "person_id") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestTrainRejectsUnknownModel(t *testing.T) {
	_, err := execute(t, "train", "--train", t.TempDir(), "--model-dir", t.TempDir(), "--model_type", "xgboost")
	if err == nil {
		t.Fatal("train with unknown model type succeeded")
	}
}

func TestLogFileClosedAfterFailedRun(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "run.log")
	cli := newCLI()
	root := cli.rootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{
		"--log-file", logFile,
		"train", "--train", t.TempDir(), "--model-dir", t.TempDir(), "--model_type", "xgboost",
	})
	if err := root.Execute(); err == nil {
		t.Fatal("train with unknown model type succeeded")
	}

	f, ok := cli.closer.(*os.File)
	if !ok {
		t.Fatalf("log closer = %T, want *os.File", cli.closer)
	}
	if err := cli.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("x")); !errors.Is(err, os.ErrClosed) {
		t.Errorf("write after Close error = %v, want os.ErrClosed", err)
	}

	logged, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(logged, []byte(`"msg":"training run failed"`)) {
		t.Errorf("log file lacks the failure record:\n%s", logged)
	}
}

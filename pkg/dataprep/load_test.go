package dataprep_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sleep_data.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	t.Run("it reads typed columns", func(t *testing.T) {
		p := writeFile(t, ""+
			"Person ID,Sleep Duration,BMI Category,Blood Pressure,Sleep Disorder\n"+
			"1,6.1,Overweight,126/83,None\n"+
			"2,,Normal Weight,125/80,Sleep Apnea\n"+
			"3,5.9,,140/90,Insomnia\n")

		table, shape, err := dataprep.Load(p)
		if err != nil {
			t.Fatal(err)
		}
		if shape != (dataprep.Shape{Rows: 3, Cols: 5}) {
			t.Errorf("shape = %v", shape)
		}

		id, _ := table.Col("Person ID")
		if id.Kind != dataprep.Numeric {
			t.Errorf("Person ID is %v", id.Kind)
		}
		sd, _ := table.Col("Sleep Duration")
		if sd.Kind != dataprep.Numeric || !math.IsNaN(sd.Floats[1]) || sd.Floats[0] != 6.1 {
			t.Errorf("Sleep Duration = %v %v", sd.Kind, sd.Floats)
		}
		bp, _ := table.Col("Blood Pressure")
		if bp.Kind != dataprep.Categorical || bp.Strings[0] != "126/83" {
			t.Errorf("Blood Pressure = %v %v", bp.Kind, bp.Strings)
		}
		bmi, _ := table.Col("BMI Category")
		if !bmi.IsMissing(2) || bmi.IsMissing(1) {
			t.Errorf("BMI Category missing marks = %v", bmi.Missing)
		}
		target, _ := table.Col("Sleep Disorder")
		if target.IsMissing(0) || target.Strings[0] != "None" {
			t.Errorf("None must be a class, got %q missing=%v", target.Strings[0], target.IsMissing(0))
		}
	})

	t.Run("missing file is NotFound", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "absent.csv")
		_, _, err := dataprep.Load(p)
		if !errors.Is(err, xerrors.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		var e *xerrors.Error
		if !errors.As(err, &e) || e.Path != p {
			t.Errorf("path not attached: %v", err)
		}
	})

	for name, content := range map[string]string{
		"ragged rows": "a,b\n1,2\n3\n",
		"empty file":  "",
	} {
		t.Run(name+" is a ReadError", func(t *testing.T) {
			_, _, err := dataprep.Load(writeFile(t, content))
			if !errors.Is(err, xerrors.ErrRead) {
				t.Fatalf("err = %v, want ErrRead", err)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	table := dataprep.NewTable(
		dataprep.Numbers("age", 30, math.NaN()),
		dataprep.Categories("gender", "Male", "").SetMissing(1),
	)
	buf := new(bytes.Buffer)
	if err := dataprep.WriteCSV(buf, table); err != nil {
		t.Fatal(err)
	}
	want := "age,gender\n30,Male\n,\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}

	back, err := dataprep.ReadCSV(bytes.NewBufferString(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Names(), table.Names()) {
		t.Errorf("names = %v", back.Names())
	}
}

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/config"
	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
)

func TestDefaultReadsSageMakerEnv(t *testing.T) {
	t.Setenv(config.EnvTrainingChannel, "/opt/ml/input/data/training")
	t.Setenv(config.EnvModelDir, "/opt/ml/model")

	cfg := config.Default()
	if cfg.Train != "/opt/ml/input/data/training" || cfg.ModelDir != "/opt/ml/model" {
		t.Errorf("dirs = %q, %q", cfg.Train, cfg.ModelDir)
	}
	if cfg.DataPath() != "/opt/ml/input/data/training/sleep_data.csv" {
		t.Errorf("data path = %q", cfg.DataPath())
	}
	spec, err := cfg.ClassifierSpec()
	if err != nil {
		t.Fatal(err)
	}
	if want := (model.ForestSpec{NEstimators: 100, MaxDepth: 10}); spec != want {
		t.Errorf("spec = %#v, want %#v", spec, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	content := `
train: data
model_type: svm
hyperparameters:
  C: 0.5
  kernel: linear
seed: 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Train != "data" || cfg.Seed != 7 || cfg.TestSize != 0.2 || !cfg.Plot {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Hyperparameters.NEstimators != 100 {
		t.Errorf("n_estimators = %d, want default 100", cfg.Hyperparameters.NEstimators)
	}
	spec, err := cfg.ClassifierSpec()
	if err != nil {
		t.Fatal(err)
	}
	if want := (model.SVCSpec{C: 0.5, Kernel: model.Linear}); spec != want {
		t.Errorf("spec = %#v, want %#v", spec, want)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("absent file error = %v, want ErrNotFound", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("seed: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); !errors.Is(err, xerrors.ErrConfig) {
		t.Errorf("malformed file error = %v, want ErrConfig", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg := config.Default()
		cfg.Train, cfg.ModelDir = "data", "out"
		return cfg
	}
	for name, mutate := range map[string]func(*config.Config){
		"no train":      func(c *config.Config) { c.Train = "" },
		"no model dir":  func(c *config.Config) { c.ModelDir = "" },
		"test size 0":   func(c *config.Config) { c.TestSize = 0 },
		"test size 1":   func(c *config.Config) { c.TestSize = 1 },
		"unknown model": func(c *config.Config) { c.ModelType = "xgboost" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, xerrors.ErrConfig) {
				t.Errorf("Validate() = %v, want ErrConfig", err)
			}
		})
	}
}

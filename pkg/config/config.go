// Package config holds the training configuration: defaults, SageMaker
// environment defaults, and an optional YAML file. Command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
)

const (
	EnvTrainingChannel = "SM_CHANNEL_TRAINING"
	EnvModelDir        = "SM_MODEL_DIR"

	DefaultDataFile = "sleep_data.csv"
)

type Config struct {
	// Train is the directory holding the training CSV.
	Train    string `yaml:"train"`
	DataFile string `yaml:"data_file"`
	ModelDir string `yaml:"model_dir"`

	ModelType       string       `yaml:"model_type"`
	Hyperparameters model.Params `yaml:"hyperparameters"`

	Seed     int64   `yaml:"seed"`
	TestSize float64 `yaml:"test_size"`
	// Plot enables the confusion-matrix chart.
	Plot bool `yaml:"plot"`

	Log Log `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level"`
	// File, when set, receives JSON log records in addition to the console.
	File string `yaml:"file"`
}

// Default returns the built-in configuration. Train and ModelDir come from
// the SageMaker channel variables when they are set.
func Default() *Config {
	return &Config{
		Train:           os.Getenv(EnvTrainingChannel),
		DataFile:        DefaultDataFile,
		ModelDir:        os.Getenv(EnvModelDir),
		ModelType:       model.ForestName,
		Hyperparameters: model.DefaultParams(),
		Seed:            42,
		TestSize:        0.2,
		Plot:            true,
		Log:             Log{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, xerrors.NotFound("load config", path, err)
		}
		return nil, xerrors.Read("load config", path, err)
	}
	if err := Unmarshal(content, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Unmarshal decodes YAML into cfg, leaving absent keys untouched.
func Unmarshal(content []byte, cfg *Config) error {
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return xerrors.Config("parse config", "%v", err)
	}
	return nil
}

// DataPath is the training CSV location.
func (c *Config) DataPath() string {
	return filepath.Join(c.Train, c.DataFile)
}

// ClassifierSpec resolves ModelType and Hyperparameters.
func (c *Config) ClassifierSpec() (model.Spec, error) {
	return model.ParseSpec(c.ModelType, c.Hyperparameters)
}

// Validate checks that a training run can start.
func (c *Config) Validate() error {
	const op = "validate config"
	if c.Train == "" {
		return xerrors.Config(op, "no training data directory (set --train or %s)", EnvTrainingChannel)
	}
	if c.ModelDir == "" {
		return xerrors.Config(op, "no model directory (set --model-dir or %s)", EnvModelDir)
	}
	if !(c.TestSize > 0 && c.TestSize < 1) {
		return xerrors.Config(op, "test_size must be in (0, 1), got %v", c.TestSize)
	}
	if _, err := c.ClassifierSpec(); err != nil {
		return err
	}
	return nil
}

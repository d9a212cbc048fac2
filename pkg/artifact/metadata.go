package artifact

import (
	"time"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
)

// Metadata describes the training run that produced a model directory.
type Metadata struct {
	RunID           string       `yaml:"run_id"`
	CreatedAt       time.Time    `yaml:"created_at"`
	ModelType       string       `yaml:"model_type"`
	Hyperparameters model.Params `yaml:"hyperparameters"`
	Seed            int64        `yaml:"seed"`
	TestSize        float64      `yaml:"test_size"`
	DataFile        string       `yaml:"data_file"`

	Rows      int `yaml:"rows"`
	Cols      int `yaml:"cols"`
	TrainRows int `yaml:"train_rows"`
	TestRows  int `yaml:"test_rows"`

	Numeric     []string `yaml:"numeric_features"`
	Categorical []string `yaml:"categorical_features"`
	Classes     []string `yaml:"classes"`

	Accuracy   float64 `yaml:"accuracy"`
	F1Weighted float64 `yaml:"f1_weighted"`
	// GroupAccuracy is test accuracy per gender group.
	GroupAccuracy map[string]float64 `yaml:"group_accuracy,omitempty"`
}

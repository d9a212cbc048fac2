// Package serve exposes a trained model over HTTP.
package serve

import (
	"errors"
	"log/slog"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/artifact"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
)

// ErrNotLoaded is returned by Predict when the artifacts failed to load.
var ErrNotLoaded = errors.New("model artifacts not loaded")

// Service owns the loaded artifacts for the life of the process.
// It is read-only after construction and safe for concurrent use.
type Service struct {
	bundle  *artifact.Bundle
	loadErr error
	logger  *slog.Logger
}

// Load reads the artifacts in modelDir. A load failure does not fail
// construction: the service reports itself unhealthy instead.
func Load(modelDir string, logger *slog.Logger) *Service {
	b, err := artifact.Load(modelDir)
	if err != nil {
		logger.Error("model artifacts not loaded", "model_dir", modelDir, "error", err)
		return &Service{loadErr: err, logger: logger}
	}
	args := []any{"model_dir", modelDir, "classes", b.Encoder.Classes}
	if b.Meta != nil {
		args = append(args, "run_id", b.Meta.RunID, "model_type", b.Meta.ModelType)
	}
	logger.Info("model artifacts loaded", args...)
	return &Service{bundle: b, logger: logger}
}

// New wraps an already loaded bundle.
func New(b *artifact.Bundle, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{bundle: b, logger: logger}
}

// Healthy reports whether predictions can be served, and why not.
func (s *Service) Healthy() error {
	if s.bundle == nil {
		if s.loadErr != nil {
			return errors.Join(ErrNotLoaded, s.loadErr)
		}
		return ErrNotLoaded
	}
	return nil
}

// Predict cleans the input row with the training-time conventions and returns
// the decoded class name.
func (s *Service) Predict(in *SleepInput) (string, error) {
	if err := s.Healthy(); err != nil {
		return "", err
	}
	t, err := in.Table()
	if err != nil {
		return "", err
	}
	labels, err := s.bundle.PredictLabels(dataprep.Clean(t))
	if err != nil {
		return "", err
	}
	s.logger.Debug("prediction", "class", labels[0])
	return labels[0], nil
}

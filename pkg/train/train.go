// Package train runs one training job: load, clean, split, fit, evaluate
// and persist.
package train

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/artifact"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/config"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/loader"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/pipeline"
)

// GroupColumn is the column the bias audit groups test accuracy by.
const GroupColumn = "gender"

// Result is what a successful run produced.
type Result struct {
	RunID   string
	Stage   Stage
	Metrics *Metrics
	Paths   artifact.Paths
	// PlotPath is empty when no chart was written.
	PlotPath string
	Meta     *artifact.Metadata
}

// Run executes a training job described by cfg. Any failure aborts the run
// and is returned with the stage reached so far; artifacts are only written
// once both of them are complete.
func Run(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	stage := Configured

	res, err := run(cfg, logger, runID, &stage)
	if err != nil {
		logger.Error("training run failed", "stage", stage, "error", err)
		return nil, fmt.Errorf("training run failed after stage %s: %w", stage, err)
	}
	return res, nil
}

func run(cfg *config.Config, logger *slog.Logger, runID string, stage *Stage) (*Result, error) {
	advance := func(s Stage, args ...any) {
		*stage = s
		logger.Info("stage "+s.String(), args...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	spec, err := cfg.ClassifierSpec()
	if err != nil {
		return nil, err
	}
	advance(Configured, "model_type", spec.Name(), "seed", cfg.Seed, "model_dir", cfg.ModelDir)

	path := cfg.DataPath()
	raw, shape, err := dataprep.Load(path)
	if err != nil {
		return nil, err
	}
	advance(DataLoaded, "path", path, "shape", shape.String())

	clean := dataprep.Clean(raw)
	features, labels, ok := dataprep.SplitFeatures(clean)
	if !ok {
		return nil, xerrors.Config("prepare target", "required target column %q not found in %s", dataprep.TargetColumn, path).
			WithShape(shape.Rows, shape.Cols)
	}
	numeric := features.NamesOf(dataprep.Numeric)
	categorical := features.NamesOf(dataprep.Categorical)
	le := dataprep.NewLabelEncoder(labels)
	y, err := le.Encode(labels)
	if err != nil {
		return nil, err
	}
	advance(Cleaned,
		"shape", clean.Shape().String(),
		"numeric", len(numeric),
		"categorical", len(categorical),
		"classes", le.Classes,
	)

	trainIdx, testIdx, err := loader.TrainTestSplit(features.Rows(), cfg.TestSize, cfg.Seed)
	if err != nil {
		return nil, xerrors.Config("split", "%v", err).WithShape(features.Rows(), features.Cols())
	}
	xTrain, xTest := features.Subset(trainIdx), features.Subset(testIdx)
	yTrain, yTest := pick(y, trainIdx), pick(y, testIdx)
	advance(Split, "train_rows", len(trainIdx), "test_rows", len(testIdx))

	clf, err := model.Build(spec, cfg.Seed)
	if err != nil {
		return nil, err
	}
	p := pipeline.Assemble(categorical, numeric, clf)
	start := time.Now()
	if err := Fit(p, xTrain, yTrain); err != nil {
		return nil, err
	}
	advance(Fitted, "duration", time.Since(start))

	m, err := Evaluate(p, xTest, yTest, le.Classes)
	if err != nil {
		return nil, err
	}

	meta := &artifact.Metadata{
		RunID:           runID,
		CreatedAt:       time.Now().UTC(),
		ModelType:       spec.Name(),
		Hyperparameters: cfg.Hyperparameters,
		Seed:            cfg.Seed,
		TestSize:        cfg.TestSize,
		DataFile:        path,
		Rows:            shape.Rows,
		Cols:            shape.Cols,
		TrainRows:       len(trainIdx),
		TestRows:        len(testIdx),
		Numeric:         numeric,
		Categorical:     categorical,
		Classes:         le.Classes,
		Accuracy:        m.Accuracy,
		F1Weighted:      m.F1Weighted,
	}
	if g, ok := xTest.Col(GroupColumn); ok && g.Kind == dataprep.Categorical {
		meta.GroupAccuracy = GroupAccuracy(g.Strings, yTest, m.Predicted)
		for group, acc := range meta.GroupAccuracy {
			logger.Info("group accuracy", "column", GroupColumn, "group", group, "accuracy", acc)
		}
	}
	advance(Evaluated, "accuracy", m.Accuracy, "f1_weighted", m.F1Weighted)
	logger.Debug("classification report\n" + m.Report)

	paths, err := artifact.Save(cfg.ModelDir, p, le, meta)
	if err != nil {
		return nil, err
	}
	advance(Persisted, "model", paths.Model, "encoder", paths.Encoder, "metadata", paths.Metadata)

	res := &Result{RunID: runID, Stage: Persisted, Metrics: m, Paths: paths, Meta: meta}
	if cfg.Plot {
		plotPath := filepath.Join(cfg.ModelDir, ConfusionPlotFile)
		labels := model.Labels(m.Confusion)
		if err := PlotConfusion(plotPath, labels, model.Counts(m.Confusion, labels)); err != nil {
			logger.Warn("confusion matrix chart not written", "error", err)
		} else {
			res.PlotPath = plotPath
			logger.Info("confusion matrix chart written", "path", plotPath)
		}
	}
	return res, nil
}

func pick(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

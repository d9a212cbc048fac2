package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/config"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/logsink"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/train"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var (
		configPath string
		noPlot     bool
		overrides  = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a classifier and write its artifacts",
		Args:  cobra.NoArgs,
		Example: `  sleepml train --train data --model-dir model
  sleepml train --config train.yaml --model_type logistic_regression --C 0.5`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer logsink.Recover(c.logger, &err)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyTrainFlags(cmd, cfg, overrides)
			if noPlot {
				cfg.Plot = false
			}
			logger, closer, err := c.runLogger(cmd, cfg.Log)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			res, err := train.Run(cfg, logger)
			if err != nil {
				return err
			}
			logger.Info("training complete",
				"run_id", res.RunID,
				"accuracy", res.Metrics.Accuracy,
				"f1_weighted", res.Metrics.F1Weighted,
				"model", res.Paths.Model,
			)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML training config")
	f.StringVar(&overrides.Train, "train", overrides.Train, "Directory holding the training CSV (default $"+config.EnvTrainingChannel+")")
	f.StringVar(&overrides.DataFile, "data-file", overrides.DataFile, "Training CSV file name inside --train")
	f.StringVar(&overrides.ModelDir, "model-dir", overrides.ModelDir, "Artifact output directory (default $"+config.EnvModelDir+")")
	f.StringVar(&overrides.ModelType, "model_type", overrides.ModelType, "logistic_regression, svm or random_forest")
	f.Float64Var(&overrides.Hyperparameters.C, "C", overrides.Hyperparameters.C, "Inverse regularization strength (logistic_regression, svm)")
	f.StringVar(&overrides.Hyperparameters.Kernel, "kernel", overrides.Hyperparameters.Kernel, "SVM kernel: linear, rbf, poly or sigmoid")
	f.IntVar(&overrides.Hyperparameters.NEstimators, "n_estimators", overrides.Hyperparameters.NEstimators, "Number of trees (random_forest)")
	f.IntVar(&overrides.Hyperparameters.MaxDepth, "max_depth", overrides.Hyperparameters.MaxDepth, "Maximum tree depth, 0 for unlimited (random_forest)")
	f.Int64Var(&overrides.Seed, "seed", overrides.Seed, "Seed for the split and the classifier")
	f.Float64Var(&overrides.TestSize, "test-size", overrides.TestSize, "Held-out fraction")
	f.BoolVar(&noPlot, "no-plot", false, "Skip the confusion matrix chart")
	return cmd
}

// runLogger honours the log section of a config file. The --log-level and
// --log-file flags take precedence over it. The closer is nil when the shared
// logger is returned.
func (c *CLI) runLogger(cmd *cobra.Command, l config.Log) (*slog.Logger, io.Closer, error) {
	set := cmd.Flags().Changed
	if l.File == "" || set("log-file") {
		return c.logger, nil, nil
	}
	levelName := l.Level
	if set("log-level") || levelName == "" {
		levelName = c.logLevel
	}
	level, err := logsink.ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}
	return logsink.New(logsink.Options{Level: level, Console: cmd.ErrOrStderr(), File: l.File})
}

// applyTrainFlags copies the flags given on the command line over cfg, so
// that flags beat the config file and the file beats the defaults.
func applyTrainFlags(cmd *cobra.Command, cfg, flags *config.Config) {
	set := cmd.Flags().Changed
	if set("train") {
		cfg.Train = flags.Train
	}
	if set("data-file") {
		cfg.DataFile = flags.DataFile
	}
	if set("model-dir") {
		cfg.ModelDir = flags.ModelDir
	}
	if set("model_type") {
		cfg.ModelType = flags.ModelType
	}
	if set("C") {
		cfg.Hyperparameters.C = flags.Hyperparameters.C
	}
	if set("kernel") {
		cfg.Hyperparameters.Kernel = flags.Hyperparameters.Kernel
	}
	if set("n_estimators") {
		cfg.Hyperparameters.NEstimators = flags.Hyperparameters.NEstimators
	}
	if set("max_depth") {
		cfg.Hyperparameters.MaxDepth = flags.Hyperparameters.MaxDepth
	}
	if set("seed") {
		cfg.Seed = flags.Seed
	}
	if set("test-size") {
		cfg.TestSize = flags.TestSize
	}
}

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/logsink"
)

// CLI carries state shared by the subcommands.
type CLI struct {
	logLevel string
	logFile  string

	logger *slog.Logger
	closer io.Closer
}

func newCLI() *CLI {
	return &CLI{logger: slog.Default()}
}

func (c *CLI) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sleepml",
		Short:        "Train and serve the sleep disorder classifier",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logsink.ParseLevel(c.logLevel)
			if err != nil {
				return err
			}
			logger, closer, err := logsink.New(logsink.Options{
				Level:   level,
				Console: cmd.ErrOrStderr(),
				File:    c.logFile,
			})
			if err != nil {
				return err
			}
			c.logger, c.closer = logger, closer
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "Also write JSON log records to this file")

	root.AddCommand(
		c.newTrainCommand(),
		c.newCleanCommand(),
		c.newServeCommand(),
	)
	return root
}

// Close releases the log file opened for the command. It runs after Execute
// whether or not the command failed.
func (c *CLI) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

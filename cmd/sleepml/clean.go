package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/logsink"
)

func (c *CLI) newCleanCommand() *cobra.Command {
	var (
		input   string
		output  string
		preview int
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Load a raw CSV and write its canonical, cleaned form",
		Args:  cobra.NoArgs,
		Example: `  sleepml clean --input raw.csv --output sleep_data.csv
  sleepml clean --input raw.csv --preview 5`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer logsink.Recover(c.logger, &err)

			raw, shape, err := dataprep.Load(input)
			if err != nil {
				return err
			}
			c.logger.Info("data loaded", "path", input, "shape", shape.String())

			clean := dataprep.Clean(raw)
			for _, col := range raw.Columns {
				if n := col.CountMissing(); n > 0 {
					c.logger.Info("missing values", "column", dataprep.NormalizeColumnName(col.Name), "count", n)
				}
			}

			if output == "" {
				return previewTable(cmd.OutOrStdout(), clean, preview)
			}
			f, err := os.Create(output)
			if err != nil {
				return xerrors.Write("write cleaned data", output, err)
			}
			defer f.Close()
			if err := dataprep.WriteCSV(f, clean); err != nil {
				return xerrors.Write("write cleaned data", output, err)
			}
			if err := f.Close(); err != nil {
				return xerrors.Write("write cleaned data", output, err)
			}
			c.logger.Info("cleaned data written", "path", output, "shape", clean.Shape().String())
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Raw CSV to clean")
	cmd.Flags().StringVar(&output, "output", "", "Write the cleaned CSV here instead of previewing it")
	cmd.Flags().IntVar(&preview, "preview", 10, "Rows to print when no --output is given")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// previewTable prints the header and the first n rows of t.
func previewTable(w io.Writer, t *dataprep.Table, n int) error {
	n = min(n, t.Rows())
	for _, name := range t.Names() {
		fmt.Fprintf(w, "%-24s", name)
	}
	fmt.Fprintln(w)
	for i := range n {
		for _, col := range t.Columns {
			var cell string
			switch {
			case col.IsMissing(i):
				cell = ""
			case col.Kind == dataprep.Numeric:
				cell = dataprep.FormatNumber(col.Floats[i])
			default:
				cell = col.Strings[i]
			}
			fmt.Fprintf(w, "%-24s", cell)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

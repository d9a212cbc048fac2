package dataprep

import (
	"encoding/csv"
	"io"
	"strconv"
)

// FormatNumber renders a numeric cell the shortest way that round-trips.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes t with a header row. Missing cells are written empty.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return err
	}
	row := make([]string, t.Cols())
	for i := 0; i < t.Rows(); i++ {
		for j, c := range t.Columns {
			switch {
			case c.IsMissing(i):
				row[j] = ""
			case c.Kind == Numeric:
				row[j] = FormatNumber(c.Floats[i])
			default:
				row[j] = c.Strings[i]
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

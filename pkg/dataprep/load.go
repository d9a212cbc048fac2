package dataprep

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
)

// NATokens are the cell values read as missing.
//
// "None" is deliberately absent: in the sleep-disorder column it is the
// no-disorder class.
var NATokens = []string{"", "NA", "NaN", "nan", "null", "<nil>"}

// Load reads a delimited file with a header row.
//
// Integer and float columns become Numeric, every other column Categorical.
func Load(path string) (*Table, Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Shape{}, xerrors.NotFound("load", path, err)
		}
		return nil, Shape{}, xerrors.Read("load", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, Shape{}, xerrors.Read("load", path, err)
	}
	return t, t.Shape(), nil
}

// ReadCSV parses CSV content into a Table.
func ReadCSV(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r, dataframe.NaNValues(NATokens))
	if df.Err != nil {
		return nil, df.Err
	}
	return fromDataFrame(df)
}

func fromDataFrame(df dataframe.DataFrame) (*Table, error) {
	t := &Table{}
	for _, name := range df.Names() {
		s := df.Col(name)
		if s.Err != nil {
			return nil, fmt.Errorf("column %q: %w", name, s.Err)
		}
		switch s.Type() {
		case series.Int, series.Float:
			t.Columns = append(t.Columns, Numbers(name, s.Float()...))
		default:
			c := Categories(name, s.Records()...)
			for i, na := range s.IsNaN() {
				if na {
					c.SetMissing(i)
				}
			}
			t.Columns = append(t.Columns, c)
		}
	}
	return t, nil
}

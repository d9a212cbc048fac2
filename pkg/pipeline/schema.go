package pipeline

import (
	"errors"
	"fmt"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
)

// ErrSchema is returned when an input table does not fit the schema a
// pipeline was assembled with.
var ErrSchema = errors.New("input does not match schema")

// Schema names the feature columns by kind, in training order.
type Schema struct {
	Numeric     []string
	Categorical []string
}

// Width is the number of raw feature columns.
func (s Schema) Width() int { return len(s.Numeric) + len(s.Categorical) }

// check reports the first column of t that is absent, of the wrong kind, or
// has a missing value.
func (s Schema) check(t *dataprep.Table) error {
	if t == nil {
		return fmt.Errorf("%w: no table", ErrSchema)
	}
	for _, want := range []struct {
		names []string
		kind  dataprep.Kind
	}{
		{s.Numeric, dataprep.Numeric},
		{s.Categorical, dataprep.Categorical},
	} {
		for _, name := range want.names {
			c, ok := t.Col(name)
			if !ok {
				return fmt.Errorf("%w: missing column %q", ErrSchema, name)
			}
			if c.Kind != want.kind {
				return fmt.Errorf("%w: column %q is %s, want %s", ErrSchema, name, c.Kind, want.kind)
			}
			if n := c.CountMissing(); n > 0 {
				return fmt.Errorf("%w: column %q has %d missing values", ErrSchema, name, n)
			}
		}
	}
	return nil
}

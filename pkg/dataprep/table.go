package dataprep

import (
	"fmt"
	"math"
)

// Kind is the storage type of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is one named, typed column.
//
// Numeric columns keep values in Floats and mark missing entries with NaN.
// Categorical columns keep values in Strings; Missing[i] marks entry i as
// missing (Missing may be nil when nothing is missing).
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Missing []bool
}

// Numbers builds a numeric column. Pass math.NaN() for a missing value.
func Numbers(name string, values ...float64) *Column {
	return &Column{Name: name, Kind: Numeric, Floats: values}
}

// Categories builds a categorical column with no missing entries.
func Categories(name string, values ...string) *Column {
	return &Column{Name: name, Kind: Categorical, Strings: values}
}

func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

func (c *Column) IsMissing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Missing != nil && c.Missing[i]
}

// SetMissing marks entry i as missing.
func (c *Column) SetMissing(i int) *Column {
	if c.Kind == Numeric {
		c.Floats[i] = math.NaN()
		return c
	}
	if c.Missing == nil {
		c.Missing = make([]bool, len(c.Strings))
	}
	c.Missing[i] = true
	c.Strings[i] = ""
	return c
}

// CountMissing reports how many entries are missing.
func (c *Column) CountMissing() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

func (c *Column) clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Missing != nil {
		out.Missing = append([]bool(nil), c.Missing...)
	}
	return out
}

func (c *Column) subset(rows []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	switch c.Kind {
	case Numeric:
		out.Floats = make([]float64, len(rows))
		for i, r := range rows {
			out.Floats[i] = c.Floats[r]
		}
	default:
		out.Strings = make([]string, len(rows))
		for i, r := range rows {
			out.Strings[i] = c.Strings[r]
		}
		if c.Missing != nil {
			out.Missing = make([]bool, len(rows))
			for i, r := range rows {
				out.Missing[i] = c.Missing[r]
			}
		}
	}
	return out
}

// Table is an ordered set of equally long columns.
//
// A nil *Table stands for an absent batch; a Table without columns is an
// explicitly empty one.
type Table struct {
	Columns []*Column
}

// Shape is the row/column count of a table, reported for diagnostics.
type Shape struct {
	Rows int
	Cols int
}

func (s Shape) String() string { return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols) }

// NewTable builds a table. It panics when column lengths disagree.
func NewTable(cols ...*Column) *Table {
	t := &Table{Columns: cols}
	for _, c := range cols {
		if c.Len() != cols[0].Len() {
			panic(fmt.Sprintf("dataprep: column %q has %d rows, want %d", c.Name, c.Len(), cols[0].Len()))
		}
	}
	return t
}

func (t *Table) Rows() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

func (t *Table) Cols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

func (t *Table) Shape() Shape { return Shape{Rows: t.Rows(), Cols: t.Cols()} }

func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NamesOf returns the names of the columns of kind k, in table order.
func (t *Table) NamesOf(k Kind) []string {
	names := []string{}
	for _, c := range t.Columns {
		if c.Kind == k {
			names = append(names, c.Name)
		}
	}
	return names
}

func (t *Table) Col(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{Columns: make([]*Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = c.clone()
	}
	return out
}

// Drop returns a copy of the table without the named columns.
// Names that are not present are ignored.
func (t *Table) Drop(names ...string) *Table {
	skip := map[string]struct{}{}
	for _, n := range names {
		skip[n] = struct{}{}
	}
	out := &Table{}
	for _, c := range t.Columns {
		if _, ok := skip[c.Name]; ok {
			continue
		}
		out.Columns = append(out.Columns, c.clone())
	}
	return out
}

// Subset returns a copy of the table holding only the given rows, in order.
func (t *Table) Subset(rows []int) *Table {
	out := &Table{Columns: make([]*Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = c.subset(rows)
	}
	return out
}

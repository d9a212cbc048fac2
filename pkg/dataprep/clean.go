package dataprep

import "strings"

const (
	// TargetColumn is the label column, after name normalization.
	TargetColumn = "sleep_disorder"
	// IDColumn identifies a subject and never reaches the model.
	IDColumn = "person_id"
	// BMIColumn holds the BMI category.
	BMIColumn = "bmi_category"

	// MissingCategory replaces missing categorical values.
	MissingCategory = "Missing"
	// NoDisorder replaces missing target values; it is a class of its own.
	NoDisorder = "None"
)

// bmiAliases maps accepted upstream BMI spellings onto one category.
var bmiAliases = map[string]string{
	"Normal Weight": "Normal",
}

// NormalizeColumnName lower-cases and trims s, then replaces spaces and
// slashes with underscores. It is idempotent.
func NormalizeColumnName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.NewReplacer(" ", "_", "/", "_").Replace(s)
}

// Clean turns a raw batch into a canonical feature table.
//
// A nil batch gives nil and an empty (0x0) batch is returned as is. Otherwise
// Clean works on a private copy and, in order:
//
//  1. normalizes column names
//  2. fills missing numeric values with the column median of this batch
//  3. fills missing categorical values with MissingCategory
//  4. rewrites BMI aliases ("Normal Weight" -> "Normal")
//
// Missing values of TargetColumn are left alone; the trainer turns them into
// NoDisorder.
func Clean(t *Table) *Table {
	if t == nil {
		return nil
	}
	if t.Rows() == 0 && t.Cols() == 0 {
		return t
	}

	out := t.Clone()
	for _, c := range out.Columns {
		c.Name = NormalizeColumnName(c.Name)
	}

	for _, c := range out.Columns {
		if c.Kind == Numeric {
			ImputeMedian(c)
		}
	}

	for _, c := range out.Columns {
		if c.Kind == Categorical && c.Name != TargetColumn {
			ImputeConstant(c, MissingCategory)
		}
	}

	if bmi, ok := out.Col(BMIColumn); ok && bmi.Kind == Categorical {
		Replace(bmi, bmiAliases)
	}
	return out
}

// Replace rewrites categorical values found in aliases. Missing entries are kept.
func Replace(c *Column, aliases map[string]string) int {
	n := 0
	for i, v := range c.Strings {
		if c.IsMissing(i) {
			continue
		}
		if to, ok := aliases[v]; ok {
			c.Strings[i] = to
			n++
		}
	}
	return n
}

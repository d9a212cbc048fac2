package dataprep

import (
	"math"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/stats"
)

// ImputeMedian replaces missing numeric values with the median of the
// present ones, in place. It returns the number of filled entries.
// A column with no present value is left untouched.
func ImputeMedian(c *Column) int {
	median := stats.NaNMedian(c.Floats)
	if math.IsNaN(median) {
		return 0
	}
	n := 0
	for i, v := range c.Floats {
		if math.IsNaN(v) {
			c.Floats[i] = median
			n++
		}
	}
	return n
}

// ImputeConstant replaces missing categorical values with constant, in place.
// It returns the number of filled entries.
func ImputeConstant(c *Column, constant string) int {
	n := 0
	for i := range c.Strings {
		if c.IsMissing(i) {
			c.Strings[i] = constant
			c.Missing[i] = false
			n++
		}
	}
	return n
}

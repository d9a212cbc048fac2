package stats

import (
	"math"
	"sort"
)

// Present returns the non-NaN values of x in their original order.
func Present(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Median returns the median value of the slice (allocates a copy).
// Even-length input averages the two middle values. Empty input gives NaN.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// NaNMedian is Median over the present values of x.
func NaNMedian(x []float64) float64 {
	return Median(Present(x))
}

// ArgMax returns the index of the largest value; ties resolve to the lowest index.
func ArgMax(x []float64) int {
	best := 0
	for i := 1; i < len(x); i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}

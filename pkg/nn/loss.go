package nn

import "math"

// CrossEntropy is the mean categorical cross-entropy of probability rows p
// against class indices y, with its gradient w.r.t. the logits (p - onehot(y))/n
// written into grad (same shape as p).
// Use this loss with softmax outputs for multi-class classification.
func CrossEntropy(y []int, p [][]float64, grad [][]float64) float64 {
	n := len(y)
	s := 0.0
	for i := range n {
		for k := range p[i] {
			grad[i][k] = p[i][k] / float64(n)
		}
		q := math.Min(math.Max(p[i][y[i]], 1e-12), 1)
		s -= math.Log(q)
		grad[i][y[i]] -= 1 / float64(n)
	}
	return s / float64(n)
}

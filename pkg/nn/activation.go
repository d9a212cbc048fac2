package nn

import "math"

// SoftmaxInPlace turns logits z into probabilities. The maximum is
// subtracted first so large logits do not overflow.
func SoftmaxInPlace(z []float64) {
	if len(z) == 0 {
		return
	}
	max := z[0]
	for _, v := range z[1:] {
		if v > max {
			max = v
		}
	}
	sum := 0.0
	for i, v := range z {
		z[i] = math.Exp(v - max)
		sum += z[i]
	}
	for i := range z {
		z[i] /= sum
	}
}

package optim_test

import (
	"math"
	"testing"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/optim"
)

func TestGDStep(t *testing.T) {
	w := []float64{1, -2}
	optim.NewGD(0.5, 0.1).Step(w, []float64{2, 0})

	want := []float64{-0.05, -1.9}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Errorf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

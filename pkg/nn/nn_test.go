package nn_test

import (
	"math"
	"testing"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/nn"
)

func TestSoftmaxInPlace(t *testing.T) {
	z := []float64{1000, 1000}
	nn.SoftmaxInPlace(z)
	if z[0] != 0.5 || z[1] != 0.5 {
		t.Errorf("softmax = %v, want [0.5 0.5]", z)
	}

	z = []float64{0, math.Log(3)}
	nn.SoftmaxInPlace(z)
	if math.Abs(z[0]-0.25) > 1e-12 || math.Abs(z[1]-0.75) > 1e-12 {
		t.Errorf("softmax = %v, want [0.25 0.75]", z)
	}
}

func TestCrossEntropy(t *testing.T) {
	p := [][]float64{{0.25, 0.75}, {0.5, 0.5}}
	grad := [][]float64{{0, 0}, {0, 0}}
	loss := nn.CrossEntropy([]int{1, 0}, p, grad)

	want := (-math.Log(0.75) - math.Log(0.5)) / 2
	if math.Abs(loss-want) > 1e-12 {
		t.Errorf("loss = %v, want %v", loss, want)
	}
	wantGrad := [][]float64{{0.125, -0.125}, {-0.25, 0.25}}
	for i := range wantGrad {
		for k := range wantGrad[i] {
			if math.Abs(grad[i][k]-wantGrad[i][k]) > 1e-12 {
				t.Errorf("grad[%d][%d] = %v, want %v", i, k, grad[i][k], wantGrad[i][k])
			}
		}
	}
}

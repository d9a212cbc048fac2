package model

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/nn"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/optim"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/stats"
)

// LogisticRegression is a multinomial (softmax) classifier with an L2
// penalty of strength 1/C, trained by full-batch gradient descent from zero
// weights.
type LogisticRegression struct {
	C       float64
	Lr      float64 // 0 => 1/L from a bound on the loss curvature
	MaxIter int
	Tol     float64 // stop once the loss improves by less than Tol

	// W is p x k, row-major; B has one bias per class.
	W        []float64
	B        []float64
	Classes  []int
	Features int
}

// LogisticOption functional config for LogisticRegression
type LogisticOption func(*LogisticRegression)

func WithC(c float64) LogisticOption { return func(m *LogisticRegression) { m.C = c } }
func WithLearningRate(lr float64) LogisticOption {
	return func(m *LogisticRegression) { m.Lr = lr }
}
func WithMaxIter(n int) LogisticOption { return func(m *LogisticRegression) { m.MaxIter = n } }

// NewLogisticRegression initializes a new Logistic Regression model.
func NewLogisticRegression(opts ...LogisticOption) *LogisticRegression {
	m := &LogisticRegression{C: 1.0, MaxIter: 1000, Tol: 1e-9}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Fit trains the model on X (n x p) and class codes y.
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	n, p := len(X), len(X[0])
	if p == 0 {
		return errors.New("logistic: no features")
	}
	classes, codes := encodeClasses(y)
	k := len(classes)

	m.Classes = classes
	m.Features = p
	m.W = make([]float64, p*k)
	m.B = make([]float64, k)

	xm := denseRows(X)
	wm := mat.NewDense(p, k, m.W)
	probs := make([][]float64, n)
	grad := make([][]float64, n)
	for i := range n {
		probs[i] = make([]float64, k)
		grad[i] = make([]float64, k)
	}
	gW := make([]float64, p*k)
	gB := make([]float64, k)
	gwm := mat.NewDense(p, k, gW)

	lr := m.Lr
	if lr <= 0 {
		lr = 1 / lipschitz(X, m.C)
	}
	wOpt := optim.NewGD(lr, 1/(m.C*float64(n)))
	bOpt := optim.NewGD(lr, 0)

	prev := math.Inf(1)
	for range m.MaxIter {
		m.forward(xm, wm, probs)
		loss := nn.CrossEntropy(codes, probs, grad)

		gm := denseRows(grad)
		gwm.Mul(xm.T(), gm)
		for c := range k {
			gB[c] = 0
			for i := range n {
				gB[c] += grad[i][c]
			}
		}
		wOpt.Step(m.W, gW)
		bOpt.Step(m.B, gB)

		if prev-loss < m.Tol && prev-loss >= 0 {
			break
		}
		prev = loss
	}
	return nil
}

// PredictProba returns the per-class probabilities for rows in X.
func (m *LogisticRegression) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range out {
		out[i] = make([]float64, len(m.Classes))
	}
	if len(X) == 0 || len(m.Classes) == 0 {
		return out
	}
	m.forward(denseRows(X), mat.NewDense(m.Features, len(m.Classes), m.W), out)
	return out
}

// Predict returns the most probable class per row.
func (m *LogisticRegression) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, pr := range m.PredictProba(X) {
		out[i] = m.Classes[stats.ArgMax(pr)]
	}
	return out
}

// forward writes softmax(XW + B) into probs.
func (m *LogisticRegression) forward(xm *mat.Dense, wm *mat.Dense, probs [][]float64) {
	var z mat.Dense
	z.Mul(xm, wm)
	for i := range probs {
		row := probs[i]
		for c := range row {
			row[c] = z.At(i, c) + m.B[c]
		}
		nn.SoftmaxInPlace(row)
	}
}

// lipschitz bounds the gradient's Lipschitz constant by half the mean
// squared row norm (bias included) plus the penalty term.
func lipschitz(X [][]float64, c float64) float64 {
	s := 0.0
	for _, row := range X {
		s += floats.Dot(row, row) + 1
	}
	n := float64(len(X))
	return 0.5*s/n + 1/(c*n)
}

func denseRows(X [][]float64) *mat.Dense {
	r, c := len(X), len(X[0])
	data := make([]float64, 0, r*c)
	for _, row := range X {
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data)
}

package model

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
)

// Kernel names a support vector kernel.
type Kernel string

const (
	Linear  Kernel = "linear"
	RBF     Kernel = "rbf"
	Poly    Kernel = "poly"
	Sigmoid Kernel = "sigmoid"
)

const (
	polyDegree = 3
	coef0      = 0.0
)

// ParseKernel validates a kernel name.
func ParseKernel(name string) (Kernel, error) {
	switch k := Kernel(strings.ToLower(strings.TrimSpace(name))); k {
	case Linear, RBF, Poly, Sigmoid:
		return k, nil
	default:
		return "", xerrors.Config("parse kernel", "unknown kernel %q (want linear, rbf, poly or sigmoid)", name)
	}
}

// Eval computes k(a, b) with the given gamma.
func (k Kernel) Eval(a, b []float64, gamma float64) float64 {
	switch k {
	case Linear:
		return floats.Dot(a, b)
	case Poly:
		return math.Pow(gamma*floats.Dot(a, b)+coef0, polyDegree)
	case Sigmoid:
		return math.Tanh(gamma*floats.Dot(a, b) + coef0)
	default:
		d := floats.Distance(a, b, 2)
		return math.Exp(-gamma * d * d)
	}
}

// scaleGamma is 1 / (p * Var(X)) over every entry of X, or 1 when X is constant.
func scaleGamma(X [][]float64) float64 {
	p := len(X[0])
	flat := make([]float64, 0, len(X)*p)
	for _, row := range X {
		flat = append(flat, row...)
	}
	_, v := stat.PopMeanVariance(flat, nil)
	if v == 0 || p == 0 {
		return 1
	}
	return 1 / (float64(p) * v)
}

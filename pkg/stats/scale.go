package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers each column to zero mean and scales it to unit
// (population) variance. Columns with zero variance are only centered.
type StandardScaler struct {
	Mean   []float64
	Std    []float64
	Fitted bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("scaler: empty X")
	}
	r, c := len(X), len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			if len(X[i]) != c {
				return errors.New("scaler: inconsistent number of columns")
			}
			col[i] = X[i][j]
		}
		mean, variance := stat.PopMeanVariance(col, nil)
		s.Mean[j] = mean
		s.Std[j] = math.Sqrt(variance)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.Fitted = true
	return nil
}

// Transform returns a scaled copy of X. An unfitted scaler returns X as is.
func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	if !s.Fitted {
		return X
	}
	Y := make([][]float64, len(X))
	for i, x := range X {
		Y[i] = make([]float64, len(s.Mean))
		s.TransformRow(x, Y[i])
	}
	return Y
}

// TransformRow scales x into dst, which must hold len(s.Mean) values.
func (s *StandardScaler) TransformRow(x, dst []float64) {
	for j := range s.Mean {
		dst[j] = (x[j] - s.Mean[j]) / s.Std[j]
	}
}

func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X), nil
}

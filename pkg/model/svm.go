package model

import (
	"math"
	"math/rand"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/stats"
)

// SVC is a kernel support vector classifier. Multi-class problems are
// decomposed one-vs-one and decided by majority vote.
type SVC struct {
	C           float64
	Kernel      Kernel
	Gamma       float64 // 0 => 1/(p*Var(X)) of each fit
	Tol         float64
	MaxPasses   int
	MaxIter     int
	RandomState int64

	// FittedGamma is the gamma the machines were trained with.
	FittedGamma float64
	Classes     []int
	Machines    []BinarySVM
}

// BinarySVM separates Classes[Pos] (+1) from Classes[Neg] (-1).
type BinarySVM struct {
	Pos, Neg int
	Vectors  [][]float64
	Coef     []float64 // alpha_i * y_i of each support vector
	B        float64
}

// NewSVC returns an untrained SVC.
func NewSVC(c float64, kernel Kernel, seed int64) *SVC {
	return &SVC{
		C:           c,
		Kernel:      kernel,
		Tol:         1e-3,
		MaxPasses:   5,
		MaxIter:     200,
		RandomState: seed,
	}
}

// Fit trains one binary machine per pair of classes.
func (s *SVC) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	classes, codes := encodeClasses(y)
	s.Classes = classes
	s.Machines = nil
	s.FittedGamma = s.Gamma
	if s.FittedGamma == 0 {
		s.FittedGamma = scaleGamma(X)
	}

	pair := int64(0)
	for a := 0; a < len(classes); a++ {
		for b := a + 1; b < len(classes); b++ {
			var sub [][]float64
			var sy []float64
			for i, c := range codes {
				switch c {
				case a:
					sub = append(sub, X[i])
					sy = append(sy, 1)
				case b:
					sub = append(sub, X[i])
					sy = append(sy, -1)
				}
			}
			m := s.smo(sub, sy, rand.New(rand.NewSource(s.RandomState+pair)))
			m.Pos, m.Neg = a, b
			s.Machines = append(s.Machines, m)
			pair++
		}
	}
	return nil
}

// Predict returns the class with the most pairwise wins; ties go to the
// lower class.
func (s *SVC) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	votes := make([]float64, len(s.Classes))
	for i, x := range X {
		clear(votes)
		for _, m := range s.Machines {
			if s.decision(&m, x) > 0 {
				votes[m.Pos]++
			} else {
				votes[m.Neg]++
			}
		}
		if len(s.Classes) > 0 {
			out[i] = s.Classes[stats.ArgMax(votes)]
		}
	}
	return out
}

func (s *SVC) decision(m *BinarySVM, x []float64) float64 {
	f := m.B
	for i, v := range m.Vectors {
		f += m.Coef[i] * s.Kernel.Eval(v, x, s.FittedGamma)
	}
	return f
}

// smo runs simplified sequential minimal optimization on one binary problem.
func (s *SVC) smo(X [][]float64, y []float64, rnd *rand.Rand) BinarySVM {
	n := len(X)
	K := make([][]float64, n)
	for i := range n {
		K[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			K[i][j] = s.Kernel.Eval(X[i], X[j], s.FittedGamma)
			K[j][i] = K[i][j]
		}
	}
	alpha := make([]float64, n)
	b := 0.0
	f := func(i int) float64 {
		v := b
		for k := range n {
			if alpha[k] != 0 {
				v += alpha[k] * y[k] * K[k][i]
			}
		}
		return v
	}

	C := s.C
	for passes, iter := 0, 0; passes < s.MaxPasses && iter < s.MaxIter && n > 1; iter++ {
		changed := 0
		for i := range n {
			Ei := f(i) - y[i]
			if !((y[i]*Ei < -s.Tol && alpha[i] < C) || (y[i]*Ei > s.Tol && alpha[i] > 0)) {
				continue
			}
			j := rnd.Intn(n - 1)
			if j >= i {
				j++
			}
			Ej := f(j) - y[j]
			ai, aj := alpha[i], alpha[j]

			var L, H float64
			if y[i] != y[j] {
				L, H = math.Max(0, aj-ai), math.Min(C, C+aj-ai)
			} else {
				L, H = math.Max(0, ai+aj-C), math.Min(C, ai+aj)
			}
			if L == H {
				continue
			}
			eta := 2*K[i][j] - K[i][i] - K[j][j]
			if eta >= 0 {
				continue
			}
			alpha[j] = math.Min(H, math.Max(L, aj-y[j]*(Ei-Ej)/eta))
			if math.Abs(alpha[j]-aj) < 1e-5 {
				alpha[j] = aj
				continue
			}
			alpha[i] = ai + y[i]*y[j]*(aj-alpha[j])

			b1 := b - Ei - y[i]*(alpha[i]-ai)*K[i][i] - y[j]*(alpha[j]-aj)*K[i][j]
			b2 := b - Ej - y[i]*(alpha[i]-ai)*K[i][j] - y[j]*(alpha[j]-aj)*K[j][j]
			switch {
			case alpha[i] > 0 && alpha[i] < C:
				b = b1
			case alpha[j] > 0 && alpha[j] < C:
				b = b2
			default:
				b = (b1 + b2) / 2
			}
			changed++
		}
		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}

	m := BinarySVM{B: b}
	for i := range n {
		if alpha[i] > 1e-8 {
			m.Vectors = append(m.Vectors, append([]float64(nil), X[i]...))
			m.Coef = append(m.Coef, alpha[i]*y[i])
		}
	}
	return m
}

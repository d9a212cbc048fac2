package model

import (
	"sort"
	"strings"

	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
)

// Classifier is a supervised multi-class model over dense feature rows.
// Labels are class codes 0..k-1.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
}

// Spec selects one of the supported classifiers together with its
// hyperparameters. The set of variants is closed.
type Spec interface {
	// Name is the variant tag used on the command line and in run metadata.
	Name() string
	isSpec()
}

const (
	LogisticName = "logistic_regression"
	SVCName      = "svm"
	ForestName   = "random_forest"
)

// LogisticSpec: multinomial logistic regression, L2 penalty of strength 1/C.
type LogisticSpec struct {
	C float64
}

// SVCSpec: kernel support vector classifier.
type SVCSpec struct {
	C      float64
	Kernel Kernel
}

// ForestSpec: random forest. MaxDepth 0 grows trees until leaves are pure.
type ForestSpec struct {
	NEstimators int
	MaxDepth    int
}

func (LogisticSpec) Name() string { return LogisticName }
func (SVCSpec) Name() string      { return SVCName }
func (ForestSpec) Name() string   { return ForestName }

func (LogisticSpec) isSpec() {}
func (SVCSpec) isSpec()      {}
func (ForestSpec) isSpec()   {}

// Build returns an untrained classifier for spec. Randomized parts of the
// classifier draw from seed only.
func Build(spec Spec, seed int64) (Classifier, error) {
	switch s := spec.(type) {
	case LogisticSpec:
		if !(s.C > 0) {
			return nil, xerrors.Config("build classifier", "%s: C must be positive, got %v", s.Name(), s.C)
		}
		return NewLogisticRegression(WithC(s.C)), nil
	case SVCSpec:
		if !(s.C > 0) {
			return nil, xerrors.Config("build classifier", "%s: C must be positive, got %v", s.Name(), s.C)
		}
		k, err := ParseKernel(string(s.Kernel))
		if err != nil {
			return nil, err
		}
		return NewSVC(s.C, k, seed), nil
	case ForestSpec:
		if s.NEstimators < 1 {
			return nil, xerrors.Config("build classifier", "%s: n_estimators must be at least 1, got %d", s.Name(), s.NEstimators)
		}
		if s.MaxDepth < 0 {
			return nil, xerrors.Config("build classifier", "%s: max_depth must not be negative, got %d", s.Name(), s.MaxDepth)
		}
		return NewRandomForest(
			WithNEstimators(s.NEstimators),
			WithForestMaxDepth(s.MaxDepth),
			WithForestRandomState(seed),
		), nil
	default:
		return nil, xerrors.Config("build classifier", "unsupported classifier spec %T", spec)
	}
}

// Params are the raw hyperparameters of every variant; each variant reads
// only its own.
type Params struct {
	C           float64 `yaml:"C"`
	Kernel      string  `yaml:"kernel"`
	NEstimators int     `yaml:"n_estimators"`
	MaxDepth    int     `yaml:"max_depth"`
}

// DefaultParams are the trainer defaults.
func DefaultParams() Params {
	return Params{C: 1.0, Kernel: string(RBF), NEstimators: 100, MaxDepth: 10}
}

// ParseSpec maps a variant tag and raw hyperparameters onto a Spec.
func ParseSpec(name string, p Params) (Spec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LogisticName:
		return LogisticSpec{C: p.C}, nil
	case SVCName:
		k, err := ParseKernel(p.Kernel)
		if err != nil {
			return nil, err
		}
		return SVCSpec{C: p.C, Kernel: k}, nil
	case ForestName:
		return ForestSpec{NEstimators: p.NEstimators, MaxDepth: p.MaxDepth}, nil
	default:
		return nil, xerrors.Config(
			"parse classifier", "unknown model type %q (want %s, %s or %s)",
			name, LogisticName, SVCName, ForestName,
		)
	}
}

// encodeClasses maps labels onto dense positions of the sorted distinct labels.
func encodeClasses(y []int) (classes []int, idx []int) {
	seen := map[int]struct{}{}
	for _, v := range y {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			classes = append(classes, v)
		}
	}
	sort.Ints(classes)
	pos := make(map[int]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	idx = make([]int, len(y))
	for i, v := range y {
		idx[i] = pos[v]
	}
	return classes, idx
}

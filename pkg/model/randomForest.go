package model

import (
	"context"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/stats"
)

// RandomForest for classification
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 => floor(sqrt(p))
	Bootstrap       bool
	RandomState     int64

	Trees   []*DecisionTreeClassifier
	Classes []int
}

// RandomForestOption functional config for RandomForest
type RandomForestOption func(*RandomForest)

func WithNEstimators(n int) RandomForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithBootstrap(b bool) RandomForestOption  { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithForestRandomState(seed int64) RandomForestOption {
	return func(rf *RandomForest) { rf.RandomState = seed }
}

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...RandomForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		Bootstrap:       true,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the forest. Trees are grown concurrently; tree i draws its
// bootstrap sample and feature subsets from RandomState+i only, so the
// fitted forest does not depend on scheduling.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	n, p := len(X), len(X[0])
	rf.Classes, _ = encodeClasses(y)

	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(p))))
	}

	trees := make([]*DecisionTreeClassifier, rf.NEstimators)
	g, ctx := errgroup.WithContext(context.Background())
	for i := range rf.NEstimators {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := rf.RandomState + int64(i)
			treeRand := rand.New(rand.NewSource(seed))

			sample := make([]int, n)
			for j := range n {
				if rf.Bootstrap {
					sample[j] = treeRand.Intn(n)
				} else {
					sample[j] = j
				}
			}

			tree := NewDecisionTreeClassifier(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMaxFeatures(maxFeatures),
				WithRandomState(treeRand.Int63()),
			)
			if err := tree.fitIndices(X, y, sample, rf.Classes); err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	rf.Trees = trees
	return nil
}

// PredictProba averages the class probabilities of all trees.
func (rf *RandomForest) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range out {
		out[i] = make([]float64, len(rf.Classes))
	}
	if len(rf.Trees) == 0 {
		return out
	}
	for _, tree := range rf.Trees {
		for i, pr := range tree.PredictProba(X) {
			for k, v := range pr {
				out[i][k] += v
			}
		}
	}
	inv := 1.0 / float64(len(rf.Trees))
	for i := range out {
		for k := range out[i] {
			out[i][k] *= inv
		}
	}
	return out
}

// Predict returns the class with the highest mean probability; ties go to
// the lower class.
func (rf *RandomForest) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, pr := range rf.PredictProba(X) {
		out[i] = rf.Classes[stats.ArgMax(pr)]
	}
	return out
}

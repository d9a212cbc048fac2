package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/stats"
)

// DecisionTreeClassifier is a CART-style classifier over numeric features.
type DecisionTreeClassifier struct {
	MaxDepth            int     // root depth = 0. 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => all features, >0 => features sampled per node
	MinImpurityDecrease float64 // minimal impurity decrease to accept a split
	RandomState         int64   // seed for feature subsampling

	Root    *Node
	Classes []int // probas of every leaf are aligned with Classes
}

// Node is a tree node. Fields are exported so fitted trees survive gob.
type Node struct {
	Leaf      bool
	Feature   int
	Threshold float64 // x <= Threshold => Left
	Left      *Node
	Right     *Node

	N      int
	Probas []float64
}

// Option functional config
type Option func(*DecisionTreeClassifier)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) Option { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMaxFeatures(k int) Option  { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns a classifier with sensible defaults.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	d := &DecisionTreeClassifier{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Fit trains the tree on X (n x p) and class codes y.
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	classes, _ := encodeClasses(y)
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.fitIndices(X, y, idx, classes)
}

// fitIndices grows the tree from the rows named by idx. Rows may repeat.
// classes fixes the layout of leaf probas, so labels absent from idx
// still get a (zero) slot.
func (t *DecisionTreeClassifier) fitIndices(X [][]float64, y []int, idx []int, classes []int) error {
	if len(idx) == 0 {
		return errors.New("dtree: no samples")
	}
	t.Classes = append([]int(nil), classes...)
	pos := make(map[int]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	codes := make([]int, len(y))
	for i, v := range y {
		ci, ok := pos[v]
		if !ok {
			return errors.New("dtree: label outside class set")
		}
		codes[i] = ci
	}

	impurity := giniFromCounts
	if t.Criterion == "entropy" {
		impurity = entropyFromCounts
	}
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.Root = t.buildNode(X, codes, idx, 0, len(X[0]), len(classes), impurity, rnd)
	return nil
}

// Predict returns the most probable class per row. Ties go to the lower class.
func (t *DecisionTreeClassifier) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		out[i] = t.Classes[stats.ArgMax(t.predictProbaSingle(X[i]))]
	}
	return out
}

// PredictProba returns the per-class probability vectors for rows in X.
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = t.predictProbaSingle(X[i])
	}
	return out
}

// splitResult holds the best split found on a single feature.
type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	leftIdx   []int
	rightIdx  []int
}

// pair is a value and its row index.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeClassifier) buildNode(X [][]float64, y []int, idx []int, depth, p, nClasses int, impurity func([]int) float64, rnd *rand.Rand) *Node {
	counts := countsFromIndices(y, idx, nClasses)
	leaf := &Node{Leaf: true, N: len(idx), Probas: countsToProbas(counts)}

	if isPure(counts) || len(idx) < t.MinSamplesSplit {
		return leaf
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return leaf
	}

	featIndices := make([]int, p)
	for j := range p {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(i, j int) { featIndices[i], featIndices[j] = featIndices[j], featIndices[i] })
		featIndices = featIndices[:t.MaxFeatures]
		sort.Ints(featIndices)
	}

	parentImpurity := impurity(counts)

	// Features are searched in parallel; results land in feature order so
	// the choice among equal gains does not depend on scheduling.
	results := make([]splitResult, len(featIndices))
	var wg sync.WaitGroup
	for k, f := range featIndices {
		wg.Add(1)
		go func(k, f int) {
			defer wg.Done()
			results[k] = t.findBestSplitForFeature(X, y, idx, f, nClasses, parentImpurity, impurity)
		}(k, f)
	}
	wg.Wait()

	best := splitResult{feature: -1}
	for _, r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}
	if best.feature == -1 || best.gain <= t.MinImpurityDecrease {
		return leaf
	}

	return &Node{
		Feature:   best.feature,
		Threshold: best.threshold,
		N:         len(idx),
		Probas:    leaf.Probas,
		Left:      t.buildNode(X, y, best.leftIdx, depth+1, p, nClasses, impurity, rnd),
		Right:     t.buildNode(X, y, best.rightIdx, depth+1, p, nClasses, impurity, rnd),
	}
}

// findBestSplitForFeature scans midpoints between distinct sorted values of feature f.
func (t *DecisionTreeClassifier) findBestSplitForFeature(X [][]float64, y []int, idx []int, f, nClasses int, parentImpurity float64, impurity func([]int) float64) splitResult {
	result := splitResult{feature: -1}

	valid := make([]pair, 0, len(idx))
	for _, ii := range idx {
		valid = append(valid, pair{X[ii][f], ii})
	}
	sort.SliceStable(valid, func(a, b int) bool { return valid[a].v < valid[b].v })

	n := float64(len(valid))
	left := make([]int, nClasses)
	right := countsFromIndices(y, idx, nClasses)
	for s := 1; s < len(valid); s++ {
		c := y[valid[s-1].i]
		left[c]++
		right[c]--
		if valid[s].v == valid[s-1].v {
			continue
		}
		if s < t.MinSamplesLeaf || len(valid)-s < t.MinSamplesLeaf {
			continue
		}
		weighted := (float64(s)/n)*impurity(left) + (float64(len(valid)-s)/n)*impurity(right)
		gain := parentImpurity - weighted
		if gain > result.gain {
			result.gain = gain
			result.feature = f
			result.threshold = (valid[s-1].v + valid[s].v) / 2.0
			result.leftIdx = indicesFromPairs(valid[:s])
			result.rightIdx = indicesFromPairs(valid[s:])
		}
	}
	return result
}

func indicesFromPairs(pairs []pair) []int {
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.i)
	}
	return out
}

func countsFromIndices(y []int, idx []int, nClasses int) []int {
	counts := make([]int, nClasses)
	for _, ii := range idx {
		counts[y[ii]]++
	}
	return counts
}

func (t *DecisionTreeClassifier) predictProbaSingle(x []float64) []float64 {
	if t.Root == nil {
		p := make([]float64, len(t.Classes))
		for i := range p {
			p[i] = 1.0 / float64(len(p))
		}
		return p
	}
	node := t.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Probas
}

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

func checkXY(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("model: empty X")
	}
	if len(y) != len(X) {
		return errors.New("model: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("model: inconsistent number of features in X rows")
		}
	}
	return nil
}

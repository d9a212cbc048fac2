package loader

import (
	"errors"
	"math"
	"math/rand"
)

// TrainTestSplit partitions row indices 0..n-1 into train and test sets.
//
// The partition depends only on n, testRatio and seed. The test set holds
// ceil(n*testRatio) rows and the train set the rest.
func TrainTestSplit(n int, testRatio float64, seed int64) (train, test []int, err error) {
	if testRatio <= 0 || 1 <= testRatio {
		return nil, nil, errors.New("split: test ratio must be in (0, 1)")
	}
	nTest := int(math.Ceil(float64(n) * testRatio))
	if n-nTest < 1 {
		return nil, nil, errors.New("split: too few rows for a train set")
	}
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	return indices[nTest:], indices[:nTest], nil
}

package model

import (
	"math"
	"sort"

	"github.com/sjwhitworth/golearn/evaluation"
)

// Accuracy is the fraction of positions where yPred matches yTrue.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// ConfusionMatrix counts (actual, predicted) label pairs.
func ConfusionMatrix(yTrue, yPred []string) evaluation.ConfusionMatrix {
	cm := evaluation.ConfusionMatrix{}
	for i, actual := range yTrue {
		row, ok := cm[actual]
		if !ok {
			row = map[string]int{}
			cm[actual] = row
		}
		row[yPred[i]]++
	}
	return cm
}

// Labels returns every label seen as actual or predicted, sorted.
func Labels(cm evaluation.ConfusionMatrix) []string {
	seen := map[string]struct{}{}
	for actual, row := range cm {
		seen[actual] = struct{}{}
		for pred := range row {
			seen[pred] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// WeightedF1 averages per-class F1 weighted by each class's true support.
// A class that is never predicted scores 0. Classes are summed in sorted
// order so the result is the same on every call.
func WeightedF1(cm evaluation.ConfusionMatrix) float64 {
	total, sum := 0, 0.0
	for _, class := range Labels(cm) {
		row, ok := cm[class]
		if !ok {
			continue
		}
		support := 0
		for _, n := range row {
			support += n
		}
		f1 := evaluation.GetF1Score(class, cm)
		if math.IsNaN(f1) || math.IsInf(f1, 0) {
			f1 = 0
		}
		sum += float64(support) * f1
		total += support
	}
	if total == 0 {
		return 0
	}
	return sum / float64(total)
}

// Report renders per-class precision, recall and F1.
func Report(cm evaluation.ConfusionMatrix) string {
	return evaluation.GetSummary(cm)
}

// Counts lays cm out as a dense matrix over labels: rows actual, columns predicted.
func Counts(cm evaluation.ConfusionMatrix, labels []string) [][]int {
	out := make([][]int, len(labels))
	for i, actual := range labels {
		out[i] = make([]int, len(labels))
		for j, pred := range labels {
			out[i][j] = cm[actual][pred]
		}
	}
	return out
}

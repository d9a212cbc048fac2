package dataprep

import (
	"fmt"
	"sort"
)

// LabelEncoder is a bijection between class names and 0..k-1.
//
// Classes are sorted, so the codes do not depend on row order. An encoder is
// built once from the training labels and never refit.
type LabelEncoder struct {
	Classes []string
}

// NewLabelEncoder fits an encoder on labels.
func NewLabelEncoder(labels []string) *LabelEncoder {
	seen := map[string]struct{}{}
	classes := []string{}
	for _, l := range labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)
	return &LabelEncoder{Classes: classes}
}

func (le *LabelEncoder) Encode(labels []string) ([]int, error) {
	index := make(map[string]int, len(le.Classes))
	for i, c := range le.Classes {
		index[c] = i
	}
	out := make([]int, len(labels))
	for i, l := range labels {
		code, ok := index[l]
		if !ok {
			return nil, fmt.Errorf("label encoder: unknown class %q", l)
		}
		out[i] = code
	}
	return out, nil
}

func (le *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || len(le.Classes) <= code {
		return "", fmt.Errorf("label encoder: code %d out of range [0, %d)", code, len(le.Classes))
	}
	return le.Classes[code], nil
}

// OneHotEncoder expands categorical columns into indicator blocks.
//
// Categories[j] holds the sorted categories seen for column j at fit time.
// A category not seen at fit time encodes to an all-zero block.
type OneHotEncoder struct {
	Categories [][]string
}

func NewOneHotEncoder() *OneHotEncoder { return &OneHotEncoder{} }

// Fit learns categories; cols[j] holds every value of column j.
func (e *OneHotEncoder) Fit(cols [][]string) {
	e.Categories = make([][]string, len(cols))
	for j, col := range cols {
		e.Categories[j] = NewLabelEncoder(col).Classes
	}
}

// Width is the number of indicator values per row.
func (e *OneHotEncoder) Width() int {
	w := 0
	for _, cats := range e.Categories {
		w += len(cats)
	}
	return w
}

// TransformRow writes the indicators of one row (values[j] for column j) into dst.
func (e *OneHotEncoder) TransformRow(values []string, dst []float64) {
	off := 0
	for j, cats := range e.Categories {
		for k := range cats {
			dst[off+k] = 0
		}
		if k := sort.SearchStrings(cats, values[j]); k < len(cats) && cats[k] == values[j] {
			dst[off+k] = 1
		}
		off += len(cats)
	}
}

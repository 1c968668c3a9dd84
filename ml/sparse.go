// Package ml holds the text classification pipeline: count vectorizer,
// tf-idf weighting, random forests per category and the grid search around them.
package ml

import "sort"

// SparseVector stores the non-zero entries of a row, Indices sorted ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// At returns the value of feature i, 0 when absent.
func (v SparseVector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

func (v SparseVector) Len() int {
	return len(v.Indices)
}

package ml

import (
	"math"

	"github.com/samber/lo"
)

// TfidfTransformer re-weights counts by smoothed inverse document frequency,
// idf = ln((1+n)/(1+df)) + 1, then L2-normalizes each row.
type TfidfTransformer struct {
	IDF []float64
}

func NewTfidfTransformer() *TfidfTransformer {
	return &TfidfTransformer{}
}

func (t *TfidfTransformer) Fit(X []SparseVector, nFeatures int) *TfidfTransformer {
	df := make([]int, nFeatures)
	for _, x := range X {
		for k, i := range x.Indices {
			if x.Values[k] != 0 {
				df[i]++
			}
		}
	}
	n := float64(len(X))
	t.IDF = lo.Map(df, func(d int, _ int) float64 {
		return math.Log((1+n)/(1+float64(d))) + 1
	})
	return t
}

func (t *TfidfTransformer) Transform(X []SparseVector) []SparseVector {
	return lo.Map(X, func(x SparseVector, _ int) SparseVector {
		values := make([]float64, len(x.Values))
		norm := 0.0
		for k, i := range x.Indices {
			w := 0.0
			if i < len(t.IDF) {
				w = x.Values[k] * t.IDF[i]
			}
			values[k] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range values {
				values[k] /= norm
			}
		}
		return SparseVector{Indices: x.Indices, Values: values}
	})
}

func (t *TfidfTransformer) FitTransform(X []SparseVector, nFeatures int) []SparseVector {
	return t.Fit(X, nFeatures).Transform(X)
}

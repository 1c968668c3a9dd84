package ml

import (
	"sort"

	"github.com/samber/lo"
)

// CountVectorizer maps tokens to a fixed vocabulary and counts them.
// Terms are indexed in alphabetical order.
type CountVectorizer struct {
	MaxFeatures int // keep the most frequent terms only, 0 keeps all
	Vocabulary  map[string]int
}

func NewCountVectorizer(maxFeatures int) *CountVectorizer {
	return &CountVectorizer{MaxFeatures: maxFeatures}
}

func (v *CountVectorizer) Fit(docs [][]string) *CountVectorizer {
	freq := make(map[string]int)
	for _, doc := range docs {
		for _, t := range doc {
			freq[t]++
		}
	}
	terms := lo.Keys(freq)
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if freq[terms[i]] != freq[terms[j]] {
				return freq[terms[i]] > freq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)
	v.Vocabulary = lo.SliceToMap(lo.Range(len(terms)), func(i int) (string, int) { return terms[i], i })
	return v
}

// Transform counts known tokens, unknown ones are ignored.
func (v *CountVectorizer) Transform(docs [][]string) []SparseVector {
	return lo.Map(docs, func(doc []string, _ int) SparseVector {
		counts := make(map[int]float64)
		for _, t := range doc {
			if idx, ok := v.Vocabulary[t]; ok {
				counts[idx]++
			}
		}
		indices := lo.Keys(counts)
		sort.Ints(indices)
		return SparseVector{
			Indices: indices,
			Values:  lo.Map(indices, func(i int, _ int) float64 { return counts[i] }),
		}
	})
}

func (v *CountVectorizer) FitTransform(docs [][]string) []SparseVector {
	return v.Fit(docs).Transform(docs)
}

// Features is the vocabulary size.
func (v *CountVectorizer) Features() int {
	return len(v.Vocabulary)
}

func (v *CountVectorizer) Fitted() bool {
	return v.Vocabulary != nil
}

// Terms returns the vocabulary ordered by feature index.
func (v *CountVectorizer) Terms() []string {
	terms := make([]string, len(v.Vocabulary))
	for t, i := range v.Vocabulary {
		terms[i] = t
	}
	return terms
}

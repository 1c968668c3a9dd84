package ml

import (
	"disaster-response/errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/samber/lo"
)

// ForestParams are the hyperparameters explored by the grid search.
type ForestParams struct {
	NEstimators     int
	MinSamplesSplit int
	MaxDepth        int
	Seed            int64
}

func (p ForestParams) String() string {
	return fmt.Sprintf("n_estimators=%d min_samples_split=%d max_depth=%d", p.NEstimators, p.MinSamplesSplit, p.MaxDepth)
}

// RandomForest averages the class probabilities of trees grown on bootstrap samples.
type RandomForest struct {
	Params  ForestParams
	Trees   []*DecisionTree
	Classes int
}

func NewRandomForest(params ForestParams) *RandomForest {
	return &RandomForest{Params: params}
}

// Fit grows NEstimators trees. Each tree has its own seed so the result
// only depends on Params.Seed.
func (f *RandomForest) Fit(X []SparseVector, y []int, nFeatures int) error {
	if len(X) == 0 {
		return errors.ErrEmptyDataset
	}
	if len(X) != len(y) {
		return fmt.Errorf("forest fit: %d rows but %d labels", len(X), len(y))
	}
	if lo.Min(y) < 0 {
		return fmt.Errorf("forest fit: negative label %d", lo.Min(y))
	}
	f.Classes = max(2, lo.Max(y)+1)
	params := TreeParams{
		MinSamplesSplit: max(2, f.Params.MinSamplesSplit),
		MaxDepth:        f.Params.MaxDepth,
		MaxFeatures:     max(1, int(math.Sqrt(float64(nFeatures)))),
	}

	f.Trees = make([]*DecisionTree, 0, f.Params.NEstimators)
	for t := 0; t < f.Params.NEstimators; t++ {
		rng := rand.New(rand.NewSource(f.Params.Seed + int64(t)*7919))
		samples := make([]int, len(X))
		for i := range samples {
			samples[i] = rng.Intn(len(X))
		}
		f.Trees = append(f.Trees, growTree(X, y, samples, f.Classes, params, rng))
	}
	return nil
}

func (f *RandomForest) PredictProba(x SparseVector) []float64 {
	proba := make([]float64, f.Classes)
	for _, t := range f.Trees {
		for c, p := range t.PredictProba(x) {
			proba[c] += p
		}
	}
	if len(f.Trees) > 0 {
		for c := range proba {
			proba[c] /= float64(len(f.Trees))
		}
	}
	return proba
}

// Predict returns the most probable class, the lowest one on ties.
func (f *RandomForest) Predict(x SparseVector) int {
	proba := f.PredictProba(x)
	best := 0
	for c, p := range proba {
		if p > proba[best] {
			best = c
		}
	}
	return best
}

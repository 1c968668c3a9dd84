package ml

import (
	"context"
	"disaster-response/errors"
	"fmt"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// MultiOutputClassifier fits one forest per output column.
type MultiOutputClassifier struct {
	Params     ForestParams
	Estimators []*RandomForest
	jobs       int
}

// NewMultiOutputClassifier fits up to jobs outputs concurrently, 0 means one per CPU.
func NewMultiOutputClassifier(params ForestParams, jobs int) *MultiOutputClassifier {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return &MultiOutputClassifier{Params: params, jobs: jobs}
}

// Fit expects Y as rows of labels, one column per output.
func (m *MultiOutputClassifier) Fit(ctx context.Context, X []SparseVector, Y [][]int, nFeatures int) error {
	if len(X) == 0 {
		return errors.ErrEmptyDataset
	}
	if len(X) != len(Y) {
		return fmt.Errorf("multi-output fit: %d rows but %d label rows", len(X), len(Y))
	}
	outputs := len(Y[0])
	if outputs == 0 {
		return errors.ErrNoCategories
	}

	estimators := make([]*RandomForest, outputs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.jobs))
	for o := 0; o < outputs; o++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			column := lo.Map(Y, func(row []int, _ int) int { return row[o] })
			params := m.Params
			params.Seed = m.Params.Seed + int64(o)*104729
			forest := NewRandomForest(params)
			if err := forest.Fit(X, column, nFeatures); err != nil {
				return fmt.Errorf("output %d: %w", o, err)
			}
			estimators[o] = forest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	m.Estimators = estimators
	return nil
}

func (m *MultiOutputClassifier) Predict(X []SparseVector) [][]int {
	return lo.Map(X, func(x SparseVector, _ int) []int {
		return lo.Map(m.Estimators, func(f *RandomForest, _ int) int { return f.Predict(x) })
	})
}

func (m *MultiOutputClassifier) Fitted() bool {
	return len(m.Estimators) > 0
}

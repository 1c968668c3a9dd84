package ml

import (
	"context"
	"disaster-response/errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ParamGrid lists the values tried for each hyperparameter.
type ParamGrid struct {
	NEstimators     []int
	MinSamplesSplit []int
}

func DefaultParamGrid() ParamGrid {
	return ParamGrid{NEstimators: []int{10, 20, 40}, MinSamplesSplit: []int{2, 3, 4}}
}

// Candidates returns the cartesian product of the grid on top of base.
func (g ParamGrid) Candidates(base ForestParams) []ForestParams {
	var candidates []ForestParams
	for _, n := range g.NEstimators {
		for _, s := range g.MinSamplesSplit {
			p := base
			p.NEstimators = n
			p.MinSamplesSplit = s
			candidates = append(candidates, p)
		}
	}
	return candidates
}

type GridSearch struct {
	log           *slog.Logger
	Grid          ParamGrid
	Base          ForestParams
	Folds         int
	Jobs          int // concurrent fits, 0 means one per CPU
	MaxVocabulary int
}

func NewGridSearch(log *slog.Logger, grid ParamGrid, base ForestParams, folds, jobs, maxVocabulary int) GridSearch {
	return GridSearch{log: log, Grid: grid, Base: base, Folds: folds, Jobs: jobs, MaxVocabulary: maxVocabulary}
}

type CandidateResult struct {
	Params     ForestParams
	FoldScores []float64
	MeanScore  float64
}

type GridResult struct {
	Best     CandidateResult
	Results  []CandidateResult
	Pipeline *Pipeline // best candidate refit on every row
}

// Fit cross-validates every candidate, then refits the best one on all rows.
// Ties go to the first candidate of the grid.
func (g GridSearch) Fit(ctx context.Context, docs [][]string, Y [][]int) (GridResult, error) {
	candidates := g.Grid.Candidates(g.Base)
	if len(candidates) == 0 {
		return GridResult{}, errors.ErrEmptyGrid
	}
	folds, err := KFold(len(docs), g.Folds)
	if err != nil {
		return GridResult{}, err
	}
	jobs := g.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g.log.Info("Grid search started",
		"candidates", len(candidates), "folds", len(folds), "fits", len(candidates)*len(folds), "jobs", jobs)

	scores := make([][]float64, len(candidates))
	for c := range scores {
		scores[c] = make([]float64, len(folds))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for c, params := range candidates {
		for f, fold := range folds {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				start := time.Now()
				pipeline := NewPipeline(params, g.MaxVocabulary, 1)
				if err := pipeline.Fit(egCtx, pick(docs, fold.Train), pick(Y, fold.Train)); err != nil {
					return fmt.Errorf("candidate %s fold %d: %w", params, f, err)
				}
				score, err := pipeline.Score(pick(docs, fold.Test), pick(Y, fold.Test))
				if err != nil {
					return fmt.Errorf("candidate %s fold %d: %w", params, f, err)
				}
				scores[c][f] = score
				g.log.Debug("CV fit done",
					"params", params.String(), "fold", f, "score", score, "elapsed", time.Since(start))
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return GridResult{}, err
	}

	results := lo.Map(candidates, func(p ForestParams, c int) CandidateResult {
		return CandidateResult{Params: p, FoldScores: scores[c], MeanScore: lo.Mean(scores[c])}
	})
	best := results[0]
	for _, r := range results[1:] {
		if r.MeanScore > best.MeanScore {
			best = r
		}
	}
	g.log.Info("Best candidate selected", "params", best.Params.String(), "mean_score", best.MeanScore)

	pipeline := NewPipeline(best.Params, g.MaxVocabulary, jobs)
	if err := pipeline.Fit(ctx, docs, Y); err != nil {
		return GridResult{}, fmt.Errorf("refit: %w", err)
	}
	return GridResult{Best: best, Results: results, Pipeline: pipeline}, nil
}

func pick[T any](items []T, indexes []int) []T {
	return lo.Map(indexes, func(i int, _ int) T { return items[i] })
}

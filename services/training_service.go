package services

import (
	"context"
	"disaster-response/errors"
	"disaster-response/ml"
	"disaster-response/nlp"
	"disaster-response/observability"
	"disaster-response/report"
	"disaster-response/repositories"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type ITrainingService interface {
	Train(ctx context.Context, modelPath string, out io.Writer) (*ml.Model, error)
}

// TrainingOptions gathers the knobs of a training run.
type TrainingOptions struct {
	Table         string
	TestSize      float64
	CVFolds       int
	Jobs          int
	MaxVocabulary int
	Grid          ml.ParamGrid
	Base          ml.ForestParams
	Phrases       []string
	Colours       bool
}

type TrainingService struct {
	log      *slog.Logger
	datasets repositories.IDatasetRepository
	runs     repositories.IRunRepository
	monitor  *observability.Monitor
	options  TrainingOptions
}

func NewTrainingService(
	log *slog.Logger,
	datasets repositories.IDatasetRepository,
	runs repositories.IRunRepository,
	monitor *observability.Monitor,
	options TrainingOptions,
) *TrainingService {
	return &TrainingService{
		log:      log,
		datasets: datasets,
		runs:     runs,
		monitor:  monitor,
		options:  options,
	}
}

// Train fits the pipeline on the stored dataset, prints the evaluation on the
// held out rows to out, then saves the model and records the run.
func (s *TrainingService) Train(ctx context.Context, modelPath string, out io.Writer) (*ml.Model, error) {
	start := time.Now()

	// 1. Load and check the dataset
	dataset, err := s.datasets.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset failed: %w", err)
	}
	if dataset.Len() == 0 {
		return nil, errors.ErrEmptyDataset
	}
	if len(dataset.Categories) == 0 {
		return nil, errors.ErrNoCategories
	}
	s.monitor.LogStage("load", "rows", dataset.Len(), "categories", len(dataset.Categories))

	// 2. Split, then tokenize every row once
	trainIdx, testIdx, err := ml.TrainTestSplit(dataset.Len(), s.options.TestSize, s.options.Base.Seed)
	if err != nil {
		return nil, err
	}
	trainSet, testSet := dataset.Subset(trainIdx), dataset.Subset(testIdx)

	tokenizer, err := nlp.NewTokenizer(s.options.Phrases)
	if err != nil {
		return nil, fmt.Errorf("building tokenizer failed: %w", err)
	}
	trainDocs := tokenizer.TokenizeAll(trainSet.Texts())
	testDocs := tokenizer.TokenizeAll(testSet.Texts())
	s.monitor.LogStage("tokenize", "train_rows", trainSet.Len(), "test_rows", testSet.Len())

	// 3. Hyperparameter search
	search := ml.NewGridSearch(s.log, s.options.Grid, s.options.Base, s.options.CVFolds, s.options.Jobs, s.options.MaxVocabulary)
	result, err := search.Fit(ctx, trainDocs, trainSet.Labels())
	if err != nil {
		return nil, fmt.Errorf("grid search failed: %w", err)
	}
	s.monitor.LogStage("grid_search",
		"best", result.Best.Params.String(), "cv_score", result.Best.MeanScore,
		"vocabulary", result.Pipeline.Vectorizer.Features())

	// 4. Evaluate on the held out rows
	predicted, err := result.Pipeline.Predict(testDocs)
	if err != nil {
		return nil, err
	}
	reports := ml.Evaluate(dataset.Categories, testSet.Labels(), predicted)
	if err := report.Write(out, reports, s.options.Colours); err != nil {
		return nil, fmt.Errorf("writing report failed: %w", err)
	}
	meanF1 := ml.MeanWeightedF1(reports)
	s.monitor.LogStage("evaluate", "mean_weighted_f1", meanF1, "subset_accuracy", ml.SubsetAccuracy(testSet.Labels(), predicted))

	// 5. Save the model
	fingerprint := dataset.Fingerprint()
	model, err := ml.NewModel(dataset.Categories, s.options.Phrases, result.Pipeline, result.Best.Params, result.Best.MeanScore, fingerprint)
	if err != nil {
		return nil, err
	}
	if err := model.Save(modelPath); err != nil {
		return nil, err
	}
	s.monitor.LogStage("save", "model", modelPath, "model_id", model.ID)

	// 6. Keep track of the run
	run := repositories.TrainingRun{
		ID:                 uuid.New(),
		At:                 model.CreatedAt,
		ModelPath:          modelPath,
		Table:              s.options.Table,
		DatasetFingerprint: fingerprint,
		Rows:               dataset.Len(),
		TrainRows:          trainSet.Len(),
		TestRows:           testSet.Len(),
		Categories:         len(dataset.Categories),
		NEstimators:        result.Best.Params.NEstimators,
		MinSamplesSplit:    result.Best.Params.MinSamplesSplit,
		CVScore:            result.Best.MeanScore,
		MeanWeightedF1:     meanF1,
		Duration:           time.Since(start),
	}
	if err := s.runs.Store(run); err != nil {
		return model, fmt.Errorf("recording training run failed: %w", err)
	}
	s.log.Info("Training run recorded", "run_id", run.ID, "duration", run.Duration)
	return model, nil
}

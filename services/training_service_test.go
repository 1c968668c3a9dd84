package services

import (
	"bytes"
	"context"
	"disaster-response/domain"
	"disaster-response/errors"
	"disaster-response/ml"
	"disaster-response/mocks"
	"disaster-response/nlp"
	"disaster-response/repositories"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func trainingDataset(n int) domain.Dataset {
	ds := domain.Dataset{Categories: []string{"water", "fire"}}
	for i := 0; i < n; i++ {
		row := domain.Row{Message: domain.Message{ID: int64(i + 1), Genre: "direct"}}
		if i%2 == 0 {
			row.Text = "We need water in Carrefour"
			row.Labels = []int{1, 0}
		} else {
			row.Text = "There is a fire near the market"
			row.Labels = []int{0, 1}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func trainingOptions() TrainingOptions {
	return TrainingOptions{
		Table:    repositories.DefaultTable,
		TestSize: 0.2,
		CVFolds:  2,
		Jobs:     2,
		Grid:     ml.ParamGrid{NEstimators: []int{2, 3}, MinSamplesSplit: []int{2}},
		Base:     ml.ForestParams{Seed: 42},
		Phrases:  nlp.DefaultPhrases,
	}
}

func TestTrainingService_Train(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	datasets := mocks.NewMockIDatasetRepository(ctrl)
	runs := mocks.NewMockIRunRepository(ctrl)
	dataset := trainingDataset(30)
	modelPath := filepath.Join(t.TempDir(), "classifier.gob")

	datasets.EXPECT().Load(gomock.Any()).Return(dataset, nil).Times(1)
	var recorded repositories.TrainingRun
	runs.EXPECT().
		Store(gomock.Any()).
		DoAndReturn(func(run repositories.TrainingRun) error {
			recorded = run
			return nil
		}).
		Times(1)

	service := NewTrainingService(log, datasets, runs, newMonitor(t, log), trainingOptions())
	var out bytes.Buffer
	model, err := service.Train(ctx, modelPath, &out)

	req.NoError(err)
	req.Equal(dataset.Categories, model.Categories)
	req.Equal(dataset.Fingerprint(), model.DatasetFingerprint)
	req.Contains([]int{2, 3}, model.Params.NEstimators)

	req.Contains(out.String(), "Category: water")
	req.Contains(out.String(), "Category: fire")
	req.Contains(out.String(), "Summary")

	req.Equal(30, recorded.Rows)
	req.Equal(24, recorded.TrainRows)
	req.Equal(6, recorded.TestRows)
	req.Equal(2, recorded.Categories)
	req.Equal(modelPath, recorded.ModelPath)
	req.Equal(repositories.DefaultTable, recorded.Table)
	req.Equal(model.DatasetFingerprint, recorded.DatasetFingerprint)
	req.Equal(model.Params.NEstimators, recorded.NEstimators)
	req.Positive(recorded.Duration)

	loaded, err := ml.LoadModel(modelPath)
	req.NoError(err)
	req.Equal(model.ID, loaded.ID)
	prediction, err := loaded.Predict("We need water in Carrefour")
	req.NoError(err)
	req.Len(prediction, 2)
}

func TestTrainingService_Train_Errors(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelInfo)

	tests := []struct {
		description string
		dataset     domain.Dataset
		loadErr     error
		wantErr     error
	}{
		{"Should fail when the table is empty", domain.Dataset{Categories: []string{"water"}}, nil, errors.ErrEmptyDataset},
		{"Should fail without categories", domain.Dataset{Rows: []domain.Row{{Message: domain.Message{ID: 1, Text: "help"}}}}, nil, errors.ErrNoCategories},
		{"Should propagate load errors", domain.Dataset{}, fmt.Errorf("no such table"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			datasets := mocks.NewMockIDatasetRepository(ctrl)
			runs := mocks.NewMockIRunRepository(ctrl)

			datasets.EXPECT().Load(gomock.Any()).Return(tt.dataset, tt.loadErr).Times(1)
			runs.EXPECT().Store(gomock.Any()).Times(0)

			service := NewTrainingService(log, datasets, runs, newMonitor(t, log), trainingOptions())
			model, err := service.Train(context.Background(), filepath.Join(t.TempDir(), "m.gob"), &bytes.Buffer{})

			req.Error(err)
			req.Nil(model)
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
			}
		})
	}
}

func TestTrainingService_Train_StoreFailureKeepsModel(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelInfo)
	ctrl := gomock.NewController(t)
	datasets := mocks.NewMockIDatasetRepository(ctrl)
	runs := mocks.NewMockIRunRepository(ctrl)
	modelPath := filepath.Join(t.TempDir(), "classifier.gob")

	datasets.EXPECT().Load(gomock.Any()).Return(trainingDataset(20), nil)
	runs.EXPECT().Store(gomock.Any()).Return(fmt.Errorf("badger closed"))

	service := NewTrainingService(log, datasets, runs, newMonitor(t, log), trainingOptions())
	model, err := service.Train(context.Background(), modelPath, &bytes.Buffer{})

	req.Error(err)
	req.NotNil(model)
	_, err = ml.LoadModel(modelPath)
	req.NoError(err)
}

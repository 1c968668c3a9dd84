package main

import (
	"bytes"
	"disaster-response/repositories"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_ReadsPopulatedHistory(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	log := logs.GetLoggerFromLevel(slog.LevelWarn)

	// Given a history written by a finished training run
	writer, err := repositories.OpenBadger(dir)
	req.NoError(err)
	at := time.Date(2024, 1, 12, 16, 53, 0, 0, time.UTC)
	for i, fingerprint := range []string{"0123456789abcdef", "fedcba"} {
		req.NoError(repositories.NewRunRepository(writer, log).Store(repositories.TrainingRun{
			ID:                 uuid.New(),
			At:                 at.Add(time.Duration(i) * time.Minute),
			ModelPath:          "classifier.gob",
			DatasetFingerprint: fingerprint,
			Rows:               30,
			TrainRows:          24,
			TestRows:           6,
			NEstimators:        20,
			MinSamplesSplit:    3,
		}))
	}
	req.NoError(writer.Close())

	// When it is opened read-only
	db, err := openDB(dir)
	req.NoError(err)
	defer db.Close()
	runs, err := repositories.NewRunRepository(db, log).List(nil)
	req.NoError(err)

	// Then both runs are readable, newest first
	req.Len(runs, 2)
	req.Equal("fedcba", runs[0].DatasetFingerprint)

	// And writes are refused
	req.Error(repositories.NewRunRepository(db, log).Store(repositories.TrainingRun{ID: uuid.New(), At: at}))
}

func TestRenderRuns(t *testing.T) {
	id := uuid.MustParse("6f1c2b9e-0000-4000-8000-000000000001")
	tests := []struct {
		name     string
		runs     []repositories.TrainingRun
		contains []string
		excludes []string
	}{
		{
			name: "Should shorten the id and the fingerprint",
			runs: []repositories.TrainingRun{{
				ID:                 id,
				At:                 time.Date(2024, 1, 12, 16, 53, 0, 0, time.UTC),
				ModelPath:          "classifier.gob",
				DatasetFingerprint: "0123456789abcdef",
				Rows:               30,
				TrainRows:          24,
				TestRows:           6,
				NEstimators:        20,
				MinSamplesSplit:    3,
				CVScore:            0.5,
				Duration:           1500 * time.Millisecond,
			}},
			contains: []string{"6f1c2b9e", "2024-01-12 16:53:00", "classifier.gob", "24/6", "n=20 split=3", "0.500", "1.5s", "0123456789ab"},
			excludes: []string{id.String(), "0123456789abcdef"},
		},
		{
			name:     "Should keep a short fingerprint as is",
			runs:     []repositories.TrainingRun{{ID: id, DatasetFingerprint: "abc"}},
			contains: []string{"abc"},
		},
		{
			name:     "Should only print the header without runs",
			contains: []string{"RUN", "WEIGHTED F1"},
			excludes: []string{"classifier.gob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			var out bytes.Buffer
			renderRuns(&out, tt.runs)
			for _, s := range tt.contains {
				req.Contains(out.String(), s, "test=%s", tt.name)
			}
			for _, s := range tt.excludes {
				req.NotContains(out.String(), s, "test=%s", tt.name)
			}
		})
	}
}

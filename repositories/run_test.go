package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func trainingRuns(at time.Time) []TrainingRun {
	return []TrainingRun{
		{ID: uuid.New(), At: at, ModelPath: "classifier.gob", Table: DefaultTable, Rows: 100, NEstimators: 10, MinSamplesSplit: 2, CVScore: 0.21},
		{ID: uuid.New(), At: at.Add(1 * time.Minute), ModelPath: "classifier.gob", Table: DefaultTable, Rows: 100, NEstimators: 20, MinSamplesSplit: 3, CVScore: 0.25},
		{ID: uuid.New(), At: at.Add(2 * time.Minute), ModelPath: "classifier.gob", Table: DefaultTable, Rows: 100, NEstimators: 40, MinSamplesSplit: 4, CVScore: 0.27, Duration: 3 * time.Second},
	}
}

func Test_Record_Multiple_Runs(t *testing.T) {
	req := require.New(t)
	repository := NewRunRepository(openTestBadger(t), slog.Default())
	runs := trainingRuns(time.Now().UTC())
	for _, run := range runs {
		req.NoError(repository.Store(run))
	}

	fetched, err := repository.List(nil)
	req.NoError(err)
	req.Len(fetched, len(runs))

	// Newest first
	req.Equal(runs[2].ID, fetched[0].ID)
	req.Equal(runs[1].ID, fetched[1].ID)
	req.Equal(runs[0].ID, fetched[2].ID)
	req.Equal(runs[2].Duration, fetched[0].Duration)
	req.True(runs[2].At.Equal(fetched[0].At))
}

func Test_Record_Multiple_Runs_And_Limit(t *testing.T) {
	req := require.New(t)
	repository := NewRunRepository(openTestBadger(t), slog.Default())
	runs := trainingRuns(time.Now().UTC())
	for _, run := range runs {
		req.NoError(repository.Store(run))
	}

	fetched, err := repository.List(lo.ToPtr(2))
	req.NoError(err)
	req.Len(fetched, 2)
	req.Equal(runs[2].ID, fetched[0].ID)
}

func Test_List_Empty(t *testing.T) {
	repository := NewRunRepository(openTestBadger(t), slog.Default())
	fetched, err := repository.List(nil)
	require.NoError(t, err)
	require.Empty(t, fetched)
}

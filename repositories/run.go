//go:generate go run go.uber.org/mock/mockgen -source=run.go -destination=../mocks/mock_run_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const runPrefix = "run:"

type IRunRepository interface {
	Store(run TrainingRun) error
	List(limit *int) ([]TrainingRun, error)
}

type RunRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRunRepository(db *badger.DB, log *slog.Logger) RunRepository {
	return RunRepository{db: db, log: log}
}

// TrainingRun summarizes one execution of the training stage.
type TrainingRun struct {
	ID                 uuid.UUID     `json:"id"`
	At                 time.Time     `json:"at"`
	ModelPath          string        `json:"model_path"`
	Table              string        `json:"table"`
	DatasetFingerprint string        `json:"dataset_fingerprint"`
	Rows               int           `json:"rows"`
	TrainRows          int           `json:"train_rows"`
	TestRows           int           `json:"test_rows"`
	Categories         int           `json:"categories"`
	NEstimators        int           `json:"n_estimators"`
	MinSamplesSplit    int           `json:"min_samples_split"`
	CVScore            float64       `json:"cv_score"`
	MeanWeightedF1     float64       `json:"mean_weighted_f1"`
	Duration           time.Duration `json:"duration"`
}

// OpenBadger opens the run history with badger's own logging kept quiet.
func OpenBadger(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING))
}

// Store persists a run under "run:{timestamp_padded}:{uuid}".
// The 19-digit padding keeps keys in chronological order.
func (r RunRepository) Store(run TrainingRun) error {
	key := fmt.Sprintf("%s%019d:%s", runPrefix, run.At.UnixNano(), run.ID)
	bytes, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List returns the most recent runs first, at most limit of them when set.
func (r RunRepository) List(limit *int) ([]TrainingRun, error) {
	var runs []TrainingRun
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(runPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the greatest key below the seek key.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999;")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit != nil && len(runs) == *limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d runs reached", *limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var run TrainingRun
				if err := json.Unmarshal(value, &run); err != nil {
					return err
				}
				runs = append(runs, run)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return runs, err
}

package ml

import (
	"disaster-response/errors"
	"disaster-response/nlp"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Model is the artifact written at the end of a training run.
// It carries everything needed to classify a raw message again.
type Model struct {
	ID                 uuid.UUID
	CreatedAt          time.Time
	Categories         []string
	Phrases            []string
	Pipeline           *Pipeline
	Params             ForestParams
	CVScore            float64
	DatasetFingerprint string

	tokenizer *nlp.Tokenizer
}

func NewModel(categories, phrases []string, pipeline *Pipeline, params ForestParams, cvScore float64, fingerprint string) (*Model, error) {
	tokenizer, err := nlp.NewTokenizer(phrases)
	if err != nil {
		return nil, err
	}
	return &Model{
		ID:                 uuid.New(),
		CreatedAt:          time.Now().UTC(),
		Categories:         categories,
		Phrases:            phrases,
		Pipeline:           pipeline,
		Params:             params,
		CVScore:            cvScore,
		DatasetFingerprint: fingerprint,
		tokenizer:          tokenizer,
	}, nil
}

// Predict classifies one raw message, returning a label per category.
func (m *Model) Predict(text string) (map[string]int, error) {
	predictions, err := m.PredictBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return predictions[0], nil
}

func (m *Model) PredictBatch(texts []string) ([]map[string]int, error) {
	if m.Pipeline == nil || m.tokenizer == nil {
		return nil, errors.ErrNotFitted
	}
	rows, err := m.Pipeline.Predict(m.tokenizer.TokenizeAll(texts))
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(labels []int, _ int) map[string]int {
		return lo.SliceToMap(lo.Range(len(m.Categories)), func(c int) (string, int) {
			return m.Categories[c], labels[c]
		})
	}), nil
}

// Save writes the model next to path first and renames it, so a reader
// never sees a partial file.
func (m *Model) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(m); err != nil {
		tmp.Close()
		return fmt.Errorf("encode model: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename model file: %w", err)
	}
	return nil
}

func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if m.tokenizer, err = nlp.NewTokenizer(m.Phrases); err != nil {
		return nil, err
	}
	return &m, nil
}

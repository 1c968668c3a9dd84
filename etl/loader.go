// Package etl extracts the raw message and category files, merges them
// and turns the encoded categories into a cleaned dataset.
package etl

import (
	"disaster-response/domain"
	"disaster-response/domain/mimetypes"
	"disaster-response/errors"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	columnID         = "id"
	columnMessage    = "message"
	columnOriginal   = "original"
	columnGenre      = "genre"
	columnCategories = "categories"
)

// LoadMessages reads the messages file. "id" and "message" are required,
// "original" and "genre" are read when present.
func LoadMessages(path string) ([]domain.Message, error) {
	var messages []domain.Message
	err := readCSV(path, []string{columnID, columnMessage}, func(line int, get func(string) string) error {
		id, err := parseID(get(columnID), line)
		if err != nil {
			return err
		}
		messages = append(messages, domain.Message{
			ID:       id,
			Text:     get(columnMessage),
			Original: get(columnOriginal),
			Genre:    get(columnGenre),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading messages from %s: %w", path, err)
	}
	return messages, nil
}

// LoadCategories reads the categories file, "id" and "categories" are required.
func LoadCategories(path string) ([]domain.CategoryRecord, error) {
	var records []domain.CategoryRecord
	err := readCSV(path, []string{columnID, columnCategories}, func(line int, get func(string) string) error {
		id, err := parseID(get(columnID), line)
		if err != nil {
			return err
		}
		records = append(records, domain.CategoryRecord{ID: id, Encoded: get(columnCategories)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading categories from %s: %w", path, err)
	}
	return records, nil
}

// Merge performs an inner join on ID. Message order is kept and every
// pairing of a repeated id is emitted, duplicates are removed by the cleaner.
func Merge(messages []domain.Message, categories []domain.CategoryRecord) []domain.MergedRecord {
	byID := lo.GroupBy(categories, func(c domain.CategoryRecord) int64 { return c.ID })
	merged := make([]domain.MergedRecord, 0, len(messages))
	for _, m := range messages {
		for _, c := range byID[m.ID] {
			merged = append(merged, domain.MergedRecord{Message: m, Categories: c.Encoded})
		}
	}
	return merged
}

func readCSV(path string, required []string, onRow func(line int, get func(string) string) error) error {
	detected, err := mimetypes.DetectFile(path)
	if err != nil {
		return err
	}
	if !mimetypes.MatchesAny(detected, mimetypes.Tabular...) {
		return fmt.Errorf("%w: detected %s", errors.ErrUnsupportedInput, detected)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: empty file", errors.ErrMissingColumn)
		}
		return err
	}
	columns := normalizeHeader(header)
	for _, name := range required {
		if !lo.Contains(columns, name) {
			return fmt.Errorf("%w: %q", errors.ErrMissingColumn, name)
		}
	}
	index := lo.SliceToMap(lo.Range(len(columns)), func(i int) (string, int) { return columns[i], i })

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return err
		}
		get := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		if err := onRow(line, get); err != nil {
			return err
		}
	}
}

func normalizeHeader(header []string) []string {
	return lo.Map(header, func(h string, i int) string {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		return strings.ToLower(strings.TrimSpace(h))
	})
}

func parseID(raw string, line int) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("record %d: invalid id %q: %w", line, raw, err)
	}
	return id, nil
}

package etl

import (
	"disaster-response/domain"
	"disaster-response/errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CleanerOptions describes the known defects of the category file.
type CleanerOptions struct {
	Separator          string
	DroppedCategory    string // constant column removed from the output
	NormalizedCategory string // column carrying an erroneous value
	ErroneousValue     int    // value mapped to 0 in NormalizedCategory
}

func DefaultCleanerOptions() CleanerOptions {
	return CleanerOptions{
		Separator:          ";",
		DroppedCategory:    "child_alone",
		NormalizedCategory: "related",
		ErroneousValue:     2,
	}
}

type Cleaner struct {
	log     *slog.Logger
	options CleanerOptions
}

func NewCleaner(log *slog.Logger, options CleanerOptions) Cleaner {
	return Cleaner{log: log, options: options}
}

// Clean expands the encoded categories into one binary column each and
// enforces the dataset invariants: unique ids, binary labels, no constant column.
func (c Cleaner) Clean(records []domain.MergedRecord) (domain.Dataset, error) {
	if len(records) == 0 {
		return domain.Dataset{}, nil
	}

	names, err := c.categoryNames(records[0].Categories)
	if err != nil {
		return domain.Dataset{}, err
	}

	rows := make([]domain.Row, 0, len(records))
	for _, r := range records {
		labels, err := c.decode(r, names)
		if err != nil {
			return domain.Dataset{}, err
		}
		rows = append(rows, domain.Row{Message: r.Message, Labels: labels})
	}

	before := len(rows)
	rows = lo.UniqBy(rows, rowKey)
	exact := before - len(rows)
	rows = lo.UniqBy(rows, func(r domain.Row) int64 { return r.ID })
	if dropped := before - len(rows); dropped > 0 {
		c.log.Info("Duplicates removed", "exact", exact, "same_id", dropped-exact, "remaining", len(rows))
	}

	ds := domain.Dataset{Categories: names, Rows: rows}
	ds = c.dropCategory(ds, c.options.DroppedCategory)
	c.normalize(ds)
	c.clampToBinary(ds)
	return ds, nil
}

func (c Cleaner) categoryNames(encoded string) ([]string, error) {
	names := lo.Map(c.pairs(encoded), func(p string, _ int) string {
		name, _, _ := strings.Cut(p, "-")
		return strings.TrimSpace(name)
	})
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no categories in %q", errors.ErrCategoryMismatch, encoded)
	}
	for _, n := range names {
		if !identifier.MatchString(n) {
			return nil, fmt.Errorf("%w: category %q", errors.ErrInvalidIdentifier, n)
		}
	}
	if dup := lo.FindDuplicates(names); len(dup) > 0 {
		return nil, fmt.Errorf("%w: repeated categories %v", errors.ErrCategoryMismatch, dup)
	}
	return names, nil
}

func (c Cleaner) decode(r domain.MergedRecord, names []string) ([]int, error) {
	pairs := c.pairs(r.Categories)
	if len(pairs) != len(names) {
		return nil, fmt.Errorf("%w: id %d has %d categories, expected %d",
			errors.ErrCategoryMismatch, r.ID, len(pairs), len(names))
	}
	labels := make([]int, len(pairs))
	for i, p := range pairs {
		name, _, _ := strings.Cut(p, "-")
		if strings.TrimSpace(name) != names[i] {
			return nil, fmt.Errorf("%w: id %d has %q at position %d, expected %q",
				errors.ErrCategoryMismatch, r.ID, name, i, names[i])
		}
		value, err := strconv.Atoi(p[len(p)-1:])
		if err != nil {
			return nil, fmt.Errorf("%w: id %d, pair %q", errors.ErrInvalidCategoryValue, r.ID, p)
		}
		labels[i] = value
	}
	return labels, nil
}

func (c Cleaner) pairs(encoded string) []string {
	parts := lo.Map(strings.Split(encoded, c.options.Separator), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}

func (c Cleaner) dropCategory(ds domain.Dataset, name string) domain.Dataset {
	idx := lo.IndexOf(ds.Categories, name)
	if idx < 0 {
		return ds
	}
	categories := append(append([]string{}, ds.Categories[:idx]...), ds.Categories[idx+1:]...)
	for i := range ds.Rows {
		labels := ds.Rows[i].Labels
		ds.Rows[i].Labels = append(append([]int{}, labels[:idx]...), labels[idx+1:]...)
	}
	c.log.Debug("Category dropped", "category", name)
	return domain.Dataset{Categories: categories, Rows: ds.Rows}
}

func (c Cleaner) normalize(ds domain.Dataset) {
	idx := lo.IndexOf(ds.Categories, c.options.NormalizedCategory)
	if idx < 0 {
		return
	}
	replaced := 0
	for i := range ds.Rows {
		if ds.Rows[i].Labels[idx] == c.options.ErroneousValue {
			ds.Rows[i].Labels[idx] = 0
			replaced++
		}
	}
	if replaced > 0 {
		c.log.Info("Erroneous values replaced",
			"category", c.options.NormalizedCategory, "value", c.options.ErroneousValue, "count", replaced)
	}
}

func (c Cleaner) clampToBinary(ds domain.Dataset) {
	clamped := map[string]int{}
	for i := range ds.Rows {
		for j, v := range ds.Rows[i].Labels {
			if v > 1 {
				ds.Rows[i].Labels[j] = 1
				clamped[ds.Categories[j]]++
			}
		}
	}
	for name, count := range clamped {
		c.log.Warn("Non binary values clamped to 1", "category", name, "count", count)
	}
}

func rowKey(r domain.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\x00%s\x00%s\x00%s\x00", r.ID, r.Text, r.Original, r.Genre)
	for _, l := range r.Labels {
		b.WriteString(strconv.Itoa(l))
	}
	return b.String()
}

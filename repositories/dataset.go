//go:generate go run go.uber.org/mock/mockgen -source=dataset.go -destination=../mocks/mock_dataset_repository.go -package=mocks
package repositories

import (
	"context"
	"database/sql"
	"disaster-response/domain"
	"disaster-response/errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	_ "modernc.org/sqlite"
)

const DefaultTable = "ETL_Preparation"

// messageColumns precede the category columns in the table.
var messageColumns = []string{"id", "message", "original", "genre"}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type IDatasetRepository interface {
	Replace(ctx context.Context, dataset domain.Dataset) error
	Load(ctx context.Context) (domain.Dataset, error)
	Count(ctx context.Context) (int, error)
}

type DatasetRepository struct {
	db    *sqlx.DB
	log   *slog.Logger
	table string
}

// OpenSQLite opens the database file with the pure Go driver.
// A single connection is kept since each stage is the only writer.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func NewDatasetRepository(db *sqlx.DB, log *slog.Logger, table string) (DatasetRepository, error) {
	if !identifier.MatchString(table) {
		return DatasetRepository{}, fmt.Errorf("%w: table %q", errors.ErrInvalidIdentifier, table)
	}
	return DatasetRepository{db: db, log: log, table: table}, nil
}

// Replace drops the table and writes the whole dataset in one transaction.
func (r DatasetRepository) Replace(ctx context.Context, dataset domain.Dataset) (err error) {
	for _, c := range dataset.Categories {
		if !identifier.MatchString(c) || lo.Contains(messageColumns, strings.ToLower(c)) {
			return fmt.Errorf("%w: category %q", errors.ErrInvalidIdentifier, c)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quote(r.table))); err != nil {
		return fmt.Errorf("dropping table %s: %w", r.table, err)
	}
	if _, err = tx.ExecContext(ctx, r.createStatement(dataset.Categories)); err != nil {
		return fmt.Errorf("creating table %s: %w", r.table, err)
	}

	columns := append(append([]string{}, messageColumns...), dataset.Categories...)
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(r.table),
		strings.Join(lo.Map(columns, func(c string, _ int) string { return quote(c) }), ", "),
		strings.Join(lo.Times(len(columns), func(int) string { return "?" }), ", "),
	)
	stmt, err := tx.PreparexContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range dataset.Rows {
		args := make([]any, 0, len(columns))
		args = append(args, row.ID, row.Text, nullable(row.Original), nullable(row.Genre))
		for _, l := range row.Labels {
			args = append(args, l)
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting message %d: %w", row.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	r.log.Debug("Dataset written", "table", r.table, "rows", len(dataset.Rows), "categories", len(dataset.Categories))
	return nil
}

// Load reads the table back. Every column after the message fields is a category.
func (r DatasetRepository) Load(ctx context.Context) (domain.Dataset, error) {
	rows, err := r.db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s", quote(r.table)))
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("reading table %s: %w", r.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.Dataset{}, err
	}
	lower := lo.Map(columns, func(c string, _ int) string { return strings.ToLower(c) })
	for _, required := range messageColumns[:2] {
		if !lo.Contains(lower, required) {
			return domain.Dataset{}, fmt.Errorf("%w: %q in table %s", errors.ErrMissingColumn, required, r.table)
		}
	}

	position := lo.SliceToMap(messageColumns, func(c string) (string, int) { return c, lo.IndexOf(lower, c) })
	last := lo.Max(lo.Values(position))
	categories := append([]string{}, columns[last+1:]...)

	dataset := domain.Dataset{Categories: categories}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return domain.Dataset{}, err
		}
		row, err := toRow(values, position, last+1)
		if err != nil {
			return domain.Dataset{}, err
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return dataset, rows.Err()
}

func (r DatasetRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", quote(r.table)))
	return count, err
}

func (r DatasetRepository) createStatement(categories []string) string {
	defs := []string{
		`"id" INTEGER NOT NULL`,
		`"message" TEXT`,
		`"original" TEXT`,
		`"genre" TEXT`,
	}
	for _, c := range categories {
		defs = append(defs, fmt.Sprintf("%s INTEGER NOT NULL", quote(c)))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quote(r.table), strings.Join(defs, ", "))
}

func toRow(values []any, position map[string]int, firstCategory int) (domain.Row, error) {
	id, err := asInt64(at(values, position["id"]))
	if err != nil {
		return domain.Row{}, fmt.Errorf("column id: %w", err)
	}
	row := domain.Row{
		Message: domain.Message{
			ID:       id,
			Text:     asString(at(values, position["message"])),
			Original: asString(at(values, position["original"])),
			Genre:    asString(at(values, position["genre"])),
		},
		Labels: make([]int, 0, len(values)-firstCategory),
	}
	for _, v := range values[firstCategory:] {
		l, err := asInt64(v)
		if err != nil {
			return domain.Row{}, fmt.Errorf("message %d: %w", id, err)
		}
		row.Labels = append(row.Labels, int(l))
	}
	return row, nil
}

func at(values []any, i int) any {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

func asInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected value %v (%T)", v, v)
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return ""
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

package main

import (
	"disaster-response/repositories"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", ".training-runs", "Path to the training runs badger DB")
	limit := flag.Int("limit", 20, "Maximum number of runs to list, 0 lists all")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	var maxRuns *int
	if *limit > 0 {
		maxRuns = limit
	}
	runs, err := repositories.NewRunRepository(db, logs.GetLoggerFromLevel(slog.LevelWarn)).List(maxRuns)
	if err != nil {
		log.Fatal(err)
	}

	renderRuns(os.Stdout, runs)
}

// renderRuns prints one borderless row per run, newest first.
func renderRuns(w io.Writer, runs []repositories.TrainingRun) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Run", "At", "Model", "Rows", "Train/Test", "Params", "CV", "Weighted F1", "Duration", "Dataset"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, r := range runs {
		table.Append([]string{
			shorten(r.ID.String(), 8),
			r.At.Format("2006-01-02 15:04:05"),
			r.ModelPath,
			strconv.Itoa(r.Rows),
			fmt.Sprintf("%d/%d", r.TrainRows, r.TestRows),
			fmt.Sprintf("n=%d split=%d", r.NEstimators, r.MinSamplesSplit),
			fmt.Sprintf("%.3f", r.CVScore),
			fmt.Sprintf("%.3f", r.MeanWeightedF1),
			r.Duration.Round(time.Millisecond).String(),
			shorten(r.DatasetFingerprint, 12),
		})
	}
	table.Render()
}

// openDB opens the history read-only so it can be inspected while a training runs.
func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil && strings.Contains(err.Error(), "Log truncate required") {
		// a crashed writer leaves the value log dirty, reopen in write mode once to truncate it
		repairOpts := badger.DefaultOptions(path).WithLogger(nil).WithBypassLockGuard(true)
		repaired, repairErr := badger.Open(repairOpts)
		if repairErr != nil {
			return nil, fmt.Errorf("repair failed: %w", repairErr)
		}
		_ = repaired.Close()
		return badger.Open(opts)
	}
	return db, err
}

func shorten(s string, n int) string {
	return s[:min(n, len(s))]
}

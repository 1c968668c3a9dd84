package main

import (
	"context"
	"disaster-response/etl"
	"disaster-response/internal"
	"disaster-response/observability"
	"disaster-response/repositories"
	"disaster-response/services"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

const usage = "Please provide the filepaths of the messages and categories datasets " +
	"as the first and second argument respectively, as well as the filepath of " +
	"the database to save the cleaned data to as the third argument.\n\n" +
	"Example: process disaster_messages.csv disaster_categories.csv DisasterResponse.db"

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Process terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the ETL stage and returns the exit code, so deferred cleanup
// always happens before the process exits.
func run(args []string, stdout io.Writer) (int, error) {
	if len(args) != 3 {
		fmt.Fprintln(stdout, usage)
		return exitUsage, nil
	}
	messagesPath, categoriesPath, databasePath := args[0], args[1], args[2]

	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadETLConfig()
	if err != nil {
		return exitUsage, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Relational store
	db, err := repositories.OpenSQLite(databasePath)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Debug("Closing database...")
		_ = db.Close()
	}()
	repository, err := repositories.NewDatasetRepository(db, log, config.TableName)
	if err != nil {
		return exitUsage, err
	}

	monitor, err := observability.NewMonitor(log)
	if err != nil {
		return exitRuntime, err
	}

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Run
	fmt.Fprintf(stdout, "Loading data...\n    MESSAGES: %s\n    CATEGORIES: %s\n", messagesPath, categoriesPath)
	service := services.NewProcessService(log, repository, etl.NewCleaner(log, config.CleanerOptions()), monitor)
	dataset, err := service.Run(ctx, messagesPath, categoriesPath)
	if err != nil {
		return exitRuntime, err
	}
	fmt.Fprintf(stdout, "Cleaned data saved to database!\n    DATABASE: %s\n    TABLE: %s\n    ROWS: %d\n",
		databasePath, config.TableName, dataset.Len())
	return exitOK, nil
}

package main

import (
	"context"
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

const usage = "Please provide the filepath of the disaster messages database " +
	"as the first argument and the filepath of the model file to save the " +
	"model to as the second argument.\n\n" +
	"Example: train ../data/DisasterResponse.db classifier.gob"

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Training terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string, stdout io.Writer) (int, error) {
	if len(args) != 2 {
		fmt.Fprintln(stdout, usage)
		return exitUsage, nil
	}
	databasePath, modelPath := args[0], args[1]

	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadTrainConfig()
	if err != nil {
		return exitUsage, err
	}
	grid, err := config.Grid()
	if err != nil {
		return exitUsage, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Stores
	if _, err := os.Stat(databasePath); err != nil {
		return exitRuntime, fmt.Errorf("database not found: %w", err)
	}
	db, err := repositories.OpenSQLite(databasePath)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Debug("Closing database...")
		_ = db.Close()
	}()
	datasets, err := repositories.NewDatasetRepository(db, log, config.TableName)
	if err != nil {
		return exitUsage, err
	}

	runsDB, err := repositories.OpenBadger(config.RunsFilepath)
	if err != nil {
		return exitRuntime, fmt.Errorf("run history opening failed: %w", err)
	}
	defer func() {
		log.Debug("Closing BadgerDB...")
		_ = runsDB.Close()
	}()
	runs := repositories.NewRunRepository(runsDB, log)

	monitor, err := observability.NewMonitor(log)
	if err != nil {
		return exitRuntime, err
	}

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Train
	fmt.Fprintf(stdout, "Loading data...\n    DATABASE: %s\n", databasePath)
	service := services.NewTrainingService(log, datasets, runs, monitor, services.TrainingOptions{
		Table:         config.TableName,
		TestSize:      config.TestSize,
		CVFolds:       config.CVFolds,
		Jobs:          config.Jobs,
		MaxVocabulary: config.MaxVocabulary,
		Grid:          grid,
		Base:          config.BaseParams(),
		Phrases:       config.PhraseList(),
		Colours:       config.ReportColours,
	})
	model, err := service.Train(ctx, modelPath, stdout)
	if err != nil {
		return exitRuntime, err
	}
	fmt.Fprintf(stdout, "Trained model saved!\n    MODEL: %s\n    ID: %s\n    PARAMS: %s\n", modelPath, model.ID, model.Params)
	return exitOK, nil
}

package services

import (
	"context"
	"disaster-response/domain"
	"disaster-response/errors"
	"disaster-response/etl"
	"disaster-response/observability"
	"disaster-response/repositories"
	"fmt"
	"log/slog"
)

type IProcessService interface {
	Run(ctx context.Context, messagesPath, categoriesPath string) (domain.Dataset, error)
}

type ProcessService struct {
	log        *slog.Logger
	repository repositories.IDatasetRepository
	cleaner    etl.Cleaner
	monitor    *observability.Monitor
}

func NewProcessService(
	log *slog.Logger,
	repository repositories.IDatasetRepository,
	cleaner etl.Cleaner,
	monitor *observability.Monitor,
) *ProcessService {
	return &ProcessService{
		log:        log,
		repository: repository,
		cleaner:    cleaner,
		monitor:    monitor,
	}
}

// Run loads both files, merges them on id, cleans the categories and
// replaces the stored table with the result.
func (s *ProcessService) Run(ctx context.Context, messagesPath, categoriesPath string) (domain.Dataset, error) {
	// 1. Extract
	messages, err := etl.LoadMessages(messagesPath)
	if err != nil {
		return domain.Dataset{}, err
	}
	categories, err := etl.LoadCategories(categoriesPath)
	if err != nil {
		return domain.Dataset{}, err
	}
	s.monitor.LogStage("load", "messages", len(messages), "categories", len(categories))

	// 2. Merge on id
	merged := etl.Merge(messages, categories)
	if len(merged) == 0 {
		return domain.Dataset{}, fmt.Errorf("%w: no message id matches a category record", errors.ErrEmptyDataset)
	}
	s.monitor.LogStage("merge", "rows", len(merged))
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}

	// 3. Clean
	dataset, err := s.cleaner.Clean(merged)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("cleaning failed: %w", err)
	}
	s.monitor.LogStage("clean", "rows", dataset.Len(), "categories", len(dataset.Categories))

	// 4. Load into the relational store
	if err := s.repository.Replace(ctx, dataset); err != nil {
		return domain.Dataset{}, fmt.Errorf("saving dataset failed: %w", err)
	}
	s.monitor.LogStage("save", "rows", dataset.Len())
	return dataset, nil
}

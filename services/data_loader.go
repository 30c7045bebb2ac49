package services

import (
	"context"
	"fmt"

	"nfl-rankings-go/logging"
)

// DataLoader orchestrates loading the season workbook into the repository.
// The dataset is replaced wholesale on every load so the repository always
// mirrors the workbook exactly.
type DataLoader struct {
	workbook *WorkbookLoader
	repo     SeasonRepository
	logger   *logging.Logger
}

// NewDataLoader creates a new data loader
func NewDataLoader(workbook *WorkbookLoader, repo SeasonRepository) *DataLoader {
	return &DataLoader{
		workbook: workbook,
		repo:     repo,
		logger:   logging.WithPrefix("DataLoader"),
	}
}

// LoadSeasonData parses the workbook at path and replaces the stored dataset
func (d *DataLoader) LoadSeasonData(ctx context.Context, path string) error {
	d.logger.Infof("Loading season data from %s", path)

	dataset, err := d.workbook.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load workbook: %w", err)
	}

	if err := d.repo.ReplaceFranchiseSeasons(ctx, dataset.FranchiseSeasons); err != nil {
		return fmt.Errorf("failed to store franchise seasons: %w", err)
	}
	if err := d.repo.ReplaceYearlyRanks(ctx, dataset.YearlyRanks); err != nil {
		return fmt.Errorf("failed to store yearly ranks: %w", err)
	}
	if err := d.repo.ReplaceYearlyWinPcts(ctx, dataset.YearlyWinPcts); err != nil {
		return fmt.Errorf("failed to store yearly winning percentages: %w", err)
	}

	d.logger.Infof("Stored %d franchise seasons, %d rank rows, %d winning-pct rows",
		len(dataset.FranchiseSeasons), len(dataset.YearlyRanks), len(dataset.YearlyWinPcts))
	return nil
}

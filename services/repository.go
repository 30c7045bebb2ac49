package services

import (
	"context"

	"nfl-rankings-go/models"
)

// SeasonRepository is the storage interface for the normalized season
// dataset. Implemented by database.MongoSeasonRepository and, for tests and
// database-less runs, database.MemorySeasonRepository.
type SeasonRepository interface {
	ReplaceFranchiseSeasons(ctx context.Context, rows []models.FranchiseSeason) error
	ReplaceYearlyRanks(ctx context.Context, rows []models.YearlyRank) error
	ReplaceYearlyWinPcts(ctx context.Context, rows []models.YearlyWinPct) error
	GetFranchiseSeasons(ctx context.Context) ([]models.FranchiseSeason, error)
	GetYearlyRanks(ctx context.Context) ([]models.YearlyRank, error)
	GetYearlyWinPcts(ctx context.Context) ([]models.YearlyWinPct, error)
}

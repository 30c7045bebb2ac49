package database

import (
	"context"
	"sync"

	"nfl-rankings-go/models"
)

// MemorySeasonRepository is an in-memory season repository. It backs the
// application when MongoDB is unavailable and is used directly in tests.
type MemorySeasonRepository struct {
	mu               sync.RWMutex
	franchiseSeasons []models.FranchiseSeason
	yearlyRanks      []models.YearlyRank
	yearlyWinPcts    []models.YearlyWinPct
}

// NewMemorySeasonRepository creates an empty in-memory season repository
func NewMemorySeasonRepository() *MemorySeasonRepository {
	return &MemorySeasonRepository{}
}

// ReplaceFranchiseSeasons replaces all Master Sheet rows
func (r *MemorySeasonRepository) ReplaceFranchiseSeasons(_ context.Context, rows []models.FranchiseSeason) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.franchiseSeasons = append([]models.FranchiseSeason(nil), rows...)
	return nil
}

// ReplaceYearlyRanks replaces all melted rank-by-year rows
func (r *MemorySeasonRepository) ReplaceYearlyRanks(_ context.Context, rows []models.YearlyRank) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.yearlyRanks = append([]models.YearlyRank(nil), rows...)
	return nil
}

// ReplaceYearlyWinPcts replaces all merged winning-percentage rows
func (r *MemorySeasonRepository) ReplaceYearlyWinPcts(_ context.Context, rows []models.YearlyWinPct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.yearlyWinPcts = append([]models.YearlyWinPct(nil), rows...)
	return nil
}

// GetFranchiseSeasons returns all Master Sheet rows
func (r *MemorySeasonRepository) GetFranchiseSeasons(_ context.Context) ([]models.FranchiseSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.FranchiseSeason(nil), r.franchiseSeasons...), nil
}

// GetYearlyRanks returns all melted rank-by-year rows
func (r *MemorySeasonRepository) GetYearlyRanks(_ context.Context) ([]models.YearlyRank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.YearlyRank(nil), r.yearlyRanks...), nil
}

// GetYearlyWinPcts returns all merged winning-percentage rows
func (r *MemorySeasonRepository) GetYearlyWinPcts(_ context.Context) ([]models.YearlyWinPct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.YearlyWinPct(nil), r.yearlyWinPcts...), nil
}

package services

import (
	"sort"

	"nfl-rankings-go/models"
)

// RankDeltaService compares original and simulated rankings. It is a pure
// transform over (team universe, PickSet); it holds no state of its own.
type RankDeltaService struct {
	scoring *ScoringService
}

// NewRankDeltaService creates a new rank delta service
func NewRankDeltaService(scoring *ScoringService) *RankDeltaService {
	return &RankDeltaService{scoring: scoring}
}

// BuildResults computes every team's original rank (by base points), its
// simulated rank (base plus bracket bonuses), and the delta between them.
// Both rankings use a stable descending sort over a name-ascending base
// order, so equal scores tie-break deterministically by team name rather
// than by incidental input order. The returned slice is ordered by
// simulated rank.
func (s *RankDeltaService) BuildResults(teams []models.Team, ps *models.PickSet) []models.SimulationResult {
	ordered := append([]models.Team(nil), teams...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	ledger := s.scoring.ComputeBonusLedger(ps)

	results := make([]models.SimulationResult, len(ordered))
	for i, team := range ordered {
		results[i] = models.SimulationResult{
			Team:           team.Name,
			BasePoints:     team.BasePoints,
			BonusPoints:    ledger[team.Name],
			SimulatedTotal: s.scoring.SimulatedTotal(team, ledger),
		}
	}

	byBase := make([]*models.SimulationResult, len(results))
	for i := range results {
		byBase[i] = &results[i]
	}
	sort.SliceStable(byBase, func(i, j int) bool { return byBase[i].BasePoints > byBase[j].BasePoints })
	for rank, result := range byBase {
		result.OriginalRank = rank + 1
	}

	bySimulated := make([]*models.SimulationResult, len(results))
	for i := range results {
		bySimulated[i] = &results[i]
	}
	sort.SliceStable(bySimulated, func(i, j int) bool {
		return bySimulated[i].SimulatedTotal > bySimulated[j].SimulatedTotal
	})
	for rank, result := range bySimulated {
		result.SimulatedRank = rank + 1
		result.RankChange = result.OriginalRank - result.SimulatedRank
		switch {
		case result.RankChange > 0:
			result.Movement = models.MovementUp
		case result.RankChange < 0:
			result.Movement = models.MovementDown
		default:
			result.Movement = models.MovementUnchanged
		}
	}

	final := make([]models.SimulationResult, len(results))
	for i, result := range bySimulated {
		final[i] = *result
	}
	return final
}

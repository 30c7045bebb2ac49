package services

import (
	"nfl-rankings-go/logging"
	"nfl-rankings-go/models"
)

// StageBonuses is the flat bonus awarded for clearing each bracket stage.
// Bonuses are additive across stages: a Super Bowl champion that also held a
// wild-card slot and won every round accumulates every bonus on the way.
var StageBonuses = map[models.BracketStage]int{
	models.StageDivisionWinners:     2,
	models.StageWildCards:           1,
	models.StageWildCardRound:       2,
	models.StageDivisionalRound:     4,
	models.StageConferenceChampions: 11,
	models.StageSuperBowl:           29,
}

// ScoringService translates a PickSet into bonus points and simulated
// totals. It holds no state: every ledger is rebuilt from the current picks
// so a revised earlier pick can never leave stale bonuses behind.
type ScoringService struct {
	logger *logging.Logger
}

// NewScoringService creates a new scoring service
func NewScoringService() *ScoringService {
	return &ScoringService{
		logger: logging.WithPrefix("ScoringService"),
	}
}

// ComputeBonusLedger returns each selected team's accumulated bonus points
// under the current picks. Teams absent from every stage are absent from the
// ledger; callers treat that as zero.
func (s *ScoringService) ComputeBonusLedger(ps *models.PickSet) map[string]int {
	ledger := make(map[string]int)
	for _, stage := range models.AllStages() {
		bonus := StageBonuses[stage]
		for _, team := range ps.TeamsAt(stage) {
			ledger[team] += bonus
		}
	}
	return ledger
}

// SimulatedTotal composes a team's base season points with its bonus.
func (s *ScoringService) SimulatedTotal(team models.Team, ledger map[string]int) int {
	return team.BasePoints + ledger[team.Name]
}

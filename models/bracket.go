package models

// BracketStage is one step of the simulated playoff bracket. Stages are
// ordered; a stage's selections are only reachable once the previous stage
// satisfies its cardinality contract.
type BracketStage int

const (
	StageDivisionWinners BracketStage = iota
	StageWildCards
	StageWildCardRound
	StageDivisionalRound
	StageConferenceChampions
	StageSuperBowl
)

// AllStages returns the bracket stages in playoff order.
func AllStages() []BracketStage {
	return []BracketStage{
		StageDivisionWinners,
		StageWildCards,
		StageWildCardRound,
		StageDivisionalRound,
		StageConferenceChampions,
		StageSuperBowl,
	}
}

// String returns the display name of the stage
func (s BracketStage) String() string {
	switch s {
	case StageDivisionWinners:
		return "Division Winners"
	case StageWildCards:
		return "Wild Cards"
	case StageWildCardRound:
		return "Wild Card Round Winners"
	case StageDivisionalRound:
		return "Divisional Round Winners"
	case StageConferenceChampions:
		return "Conference Champions"
	case StageSuperBowl:
		return "Super Bowl Champion"
	default:
		return "Unknown Stage"
	}
}

// PickSet is the complete set of user selections across all bracket stages
// for the current simulation run. It is the only source of truth for the
// simulation; bonus ledgers and rank deltas are derived views recomputed
// from it on every read.
type PickSet struct {
	DivisionWinners        map[string]string   // division -> team ("" = none selected yet)
	WildCards              map[string][]string // conference -> teams
	WildCardRoundWinners   map[string][]string // conference -> teams
	DivisionalRoundWinners map[string][]string // conference -> teams
	ConferenceChampions    map[string]string   // conference -> team
	SuperBowlChampion      string
}

// NewPickSet creates an empty PickSet.
func NewPickSet() *PickSet {
	return &PickSet{
		DivisionWinners:        make(map[string]string),
		WildCards:              make(map[string][]string),
		WildCardRoundWinners:   make(map[string][]string),
		DivisionalRoundWinners: make(map[string][]string),
		ConferenceChampions:    make(map[string]string),
	}
}

// Reset clears every stage selection by replacing the whole value, never by
// scanning keys. Idempotent.
func (p *PickSet) Reset() {
	*p = *NewPickSet()
}

// TeamsAt returns every team selected at the given stage, across all
// divisions/conferences. Empty sentinel selections are skipped.
func (p *PickSet) TeamsAt(stage BracketStage) []string {
	var teams []string
	switch stage {
	case StageDivisionWinners:
		for _, team := range p.DivisionWinners {
			if team != "" {
				teams = append(teams, team)
			}
		}
	case StageWildCards:
		for _, conf := range p.WildCards {
			teams = append(teams, conf...)
		}
	case StageWildCardRound:
		for _, conf := range p.WildCardRoundWinners {
			teams = append(teams, conf...)
		}
	case StageDivisionalRound:
		for _, conf := range p.DivisionalRoundWinners {
			teams = append(teams, conf...)
		}
	case StageConferenceChampions:
		for _, team := range p.ConferenceChampions {
			if team != "" {
				teams = append(teams, team)
			}
		}
	case StageSuperBowl:
		if p.SuperBowlChampion != "" {
			teams = append(teams, p.SuperBowlChampion)
		}
	}
	return teams
}

// Movement is the directional change between original and simulated rank.
type Movement string

const (
	MovementUp        Movement = "up"
	MovementDown      Movement = "down"
	MovementUnchanged Movement = "unchanged"
)

// SimulationResult is one team's row in the final rank-delta table.
type SimulationResult struct {
	Team           string   `json:"team"`
	BasePoints     int      `json:"base_points"`
	BonusPoints    int      `json:"bonus_points"`
	SimulatedTotal int      `json:"simulated_total"`
	OriginalRank   int      `json:"original_rank"`
	SimulatedRank  int      `json:"simulated_rank"`
	RankChange     int      `json:"rank_change"` // original - simulated; positive = improved
	Movement       Movement `json:"movement"`
}

// MovementArrow returns the display arrow for the movement indicator
func (r *SimulationResult) MovementArrow() string {
	switch r.Movement {
	case MovementUp:
		return "▲"
	case MovementDown:
		return "▼"
	default:
		return "—"
	}
}

// GetMovementClass returns a CSS class for the movement indicator
func (r *SimulationResult) GetMovementClass() string {
	switch r.Movement {
	case MovementUp:
		return "movement-up"
	case MovementDown:
		return "movement-down"
	default:
		return "movement-none"
	}
}

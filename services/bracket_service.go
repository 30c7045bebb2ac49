package services

import (
	"errors"
	"fmt"
	"sort"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/models"
)

// Required selection counts per conference for the elimination rounds.
const (
	WildCardsPerConference         = 3
	WildCardWinnersPerConference   = 4
	DivisionalWinnersPerConference = 2
)

var (
	// ErrInvalidSelection means a chosen team is outside the current
	// stage's candidate pool. The selection is rejected and the PickSet is
	// left untouched.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrStageLocked means a selection targeted a stage whose previous
	// stage has not satisfied its cardinality contract yet. Recoverable:
	// complete the earlier stage and try again.
	ErrStageLocked = errors.New("stage locked")
)

// BracketService sequences the playoff simulation stages. It holds the fixed
// team universe of the active season and validates every selection against
// the stage's candidate pool, which is re-derived from the current PickSet
// on every call so that revising an earlier pick immediately invalidates
// anything downstream that no longer fits.
type BracketService struct {
	teams         map[string]models.Team
	divisionTeams map[string][]string // division -> sorted team names
	confDivisions map[string][]string // conference -> sorted division names
	conferences   []string
	logger        *logging.Logger
}

// NewBracketService creates a bracket service over a fixed team universe.
func NewBracketService(teams []models.Team) *BracketService {
	s := &BracketService{
		teams:         make(map[string]models.Team, len(teams)),
		divisionTeams: make(map[string][]string),
		confDivisions: make(map[string][]string),
		logger:        logging.WithPrefix("BracketService"),
	}

	confSeen := make(map[string]bool)
	divSeen := make(map[string]bool)
	for _, team := range teams {
		s.teams[team.Name] = team
		s.divisionTeams[team.Division] = append(s.divisionTeams[team.Division], team.Name)
		if !divSeen[team.Division] {
			divSeen[team.Division] = true
			s.confDivisions[team.Conference] = append(s.confDivisions[team.Conference], team.Division)
		}
		if !confSeen[team.Conference] {
			confSeen[team.Conference] = true
			s.conferences = append(s.conferences, team.Conference)
		}
	}

	for _, names := range s.divisionTeams {
		sort.Strings(names)
	}
	for _, divs := range s.confDivisions {
		sort.Strings(divs)
	}
	sort.Strings(s.conferences)

	s.logger.Infof("Bracket ready: %d teams in %d divisions across %d conferences",
		len(s.teams), len(s.divisionTeams), len(s.conferences))
	return s
}

// Teams returns the team universe sorted by name.
func (s *BracketService) Teams() []models.Team {
	names := make([]string, 0, len(s.teams))
	for name := range s.teams {
		names = append(names, name)
	}
	sort.Strings(names)

	teams := make([]models.Team, 0, len(names))
	for _, name := range names {
		teams = append(teams, s.teams[name])
	}
	return teams
}

// Conferences returns the conference names sorted.
func (s *BracketService) Conferences() []string {
	return append([]string(nil), s.conferences...)
}

// Divisions returns a conference's division names sorted.
func (s *BracketService) Divisions(conference string) []string {
	return append([]string(nil), s.confDivisions[conference]...)
}

// SelectDivisionWinner records a division's winner. The choice is constrained
// to teams within that division; the empty string is the "none selected"
// sentinel and is allowed mid-interaction but blocks stage completion.
func (s *BracketService) SelectDivisionWinner(ps *models.PickSet, division, team string) error {
	pool, ok := s.divisionTeams[division]
	if !ok {
		return fmt.Errorf("%w: unknown division %q", ErrInvalidSelection, division)
	}
	if team != "" && !containsString(pool, team) {
		return fmt.Errorf("%w: %s does not play in %s", ErrInvalidSelection, team, division)
	}

	ps.DivisionWinners[division] = team
	return nil
}

// SelectWildCards records a conference's wild-card teams. The candidate pool
// is every team in the conference that is not already a division winner.
// Fewer (or more) than the required three selections is recoverable and
// simply blocks progression.
func (s *BracketService) SelectWildCards(ps *models.PickSet, conference string, teams []string) error {
	if _, ok := s.confDivisions[conference]; !ok {
		return fmt.Errorf("%w: unknown conference %q", ErrInvalidSelection, conference)
	}
	if !s.Unlocked(ps, models.StageWildCards) {
		return fmt.Errorf("%w: select every division winner first", ErrStageLocked)
	}

	pool := s.wildCardPool(ps, conference)
	if err := s.validateSelection(teams, pool); err != nil {
		return err
	}

	ps.WildCards[conference] = append([]string(nil), teams...)
	return nil
}

// SelectRoundWinners records a conference's winners for an elimination round.
// For the wild-card round the pool is every playoff qualifier in the
// conference; for the divisional round it is the wild-card round's winners.
func (s *BracketService) SelectRoundWinners(ps *models.PickSet, stage models.BracketStage, conference string, teams []string) error {
	if _, ok := s.confDivisions[conference]; !ok {
		return fmt.Errorf("%w: unknown conference %q", ErrInvalidSelection, conference)
	}

	var pool []string
	switch stage {
	case models.StageWildCardRound:
		if !s.Unlocked(ps, models.StageWildCardRound) {
			return fmt.Errorf("%w: complete the wild card selections first", ErrStageLocked)
		}
		pool = s.qualifierPool(ps, conference)
	case models.StageDivisionalRound:
		if !s.Unlocked(ps, models.StageDivisionalRound) {
			return fmt.Errorf("%w: complete the wild card round first", ErrStageLocked)
		}
		pool = sortedCopy(ps.WildCardRoundWinners[conference])
	default:
		return fmt.Errorf("%w: %s is not an elimination round", ErrInvalidSelection, stage)
	}

	if err := s.validateSelection(teams, pool); err != nil {
		return err
	}

	switch stage {
	case models.StageWildCardRound:
		ps.WildCardRoundWinners[conference] = append([]string(nil), teams...)
	case models.StageDivisionalRound:
		ps.DivisionalRoundWinners[conference] = append([]string(nil), teams...)
	}
	return nil
}

// SelectConferenceChampion records a conference's champion out of its two
// divisional-round winners.
func (s *BracketService) SelectConferenceChampion(ps *models.PickSet, conference, team string) error {
	if _, ok := s.confDivisions[conference]; !ok {
		return fmt.Errorf("%w: unknown conference %q", ErrInvalidSelection, conference)
	}
	if !s.Unlocked(ps, models.StageConferenceChampions) {
		return fmt.Errorf("%w: complete the divisional round first", ErrStageLocked)
	}

	pool := ps.DivisionalRoundWinners[conference]
	if team != "" && !containsString(pool, team) {
		return fmt.Errorf("%w: %s did not win a divisional round game in the %s", ErrInvalidSelection, team, conference)
	}

	ps.ConferenceChampions[conference] = team
	return nil
}

// SelectSuperBowlChampion records the champion out of the two conference
// champions.
func (s *BracketService) SelectSuperBowlChampion(ps *models.PickSet, team string) error {
	if !s.Unlocked(ps, models.StageSuperBowl) {
		return fmt.Errorf("%w: select both conference champions first", ErrStageLocked)
	}

	if team != "" && !containsString(ps.TeamsAt(models.StageConferenceChampions), team) {
		return fmt.Errorf("%w: %s is not a conference champion", ErrInvalidSelection, team)
	}

	ps.SuperBowlChampion = team
	return nil
}

// Reset clears all stage selections. Idempotent.
func (s *BracketService) Reset(ps *models.PickSet) {
	ps.Reset()
}

// StageComplete reports whether a stage satisfies its cardinality contract
// under the current PickSet. Nothing is cached: completeness is recomputed
// from the pick state and candidate pools every time, so revising an early
// pick can take a later stage back to incomplete.
func (s *BracketService) StageComplete(ps *models.PickSet, stage models.BracketStage) bool {
	switch stage {
	case models.StageDivisionWinners:
		for division, pool := range s.divisionTeams {
			winner := ps.DivisionWinners[division]
			if winner == "" || !containsString(pool, winner) {
				return false
			}
		}
		return true
	case models.StageWildCards:
		for _, conference := range s.conferences {
			if !selectionSatisfied(ps.WildCards[conference], s.wildCardPool(ps, conference), WildCardsPerConference) {
				return false
			}
		}
		return true
	case models.StageWildCardRound:
		for _, conference := range s.conferences {
			if !selectionSatisfied(ps.WildCardRoundWinners[conference], s.qualifierPool(ps, conference), WildCardWinnersPerConference) {
				return false
			}
		}
		return true
	case models.StageDivisionalRound:
		for _, conference := range s.conferences {
			if !selectionSatisfied(ps.DivisionalRoundWinners[conference], ps.WildCardRoundWinners[conference], DivisionalWinnersPerConference) {
				return false
			}
		}
		return true
	case models.StageConferenceChampions:
		for _, conference := range s.conferences {
			champion := ps.ConferenceChampions[conference]
			if champion == "" || !containsString(ps.DivisionalRoundWinners[conference], champion) {
				return false
			}
		}
		return true
	case models.StageSuperBowl:
		champion := ps.SuperBowlChampion
		return champion != "" && containsString(ps.TeamsAt(models.StageConferenceChampions), champion)
	}
	return false
}

// Unlocked reports whether every stage before the given one is complete.
func (s *BracketService) Unlocked(ps *models.PickSet, stage models.BracketStage) bool {
	for _, prior := range models.AllStages() {
		if prior >= stage {
			break
		}
		if !s.StageComplete(ps, prior) {
			return false
		}
	}
	return true
}

// StageStatus describes one scope (a division, a conference, or the Super
// Bowl) of one stage for the interaction surface.
type StageStatus struct {
	Stage      models.BracketStage
	Scope      string // division or conference name; empty for the Super Bowl
	Candidates []string
	Selected   []string
	Required   int
	Remaining  int // Required minus valid selections; negative when over-picked
	Complete   bool
	Unlocked   bool
	Message    string
}

// StageStatuses returns the status of every stage scope in bracket order.
func (s *BracketService) StageStatuses(ps *models.PickSet) []StageStatus {
	var statuses []StageStatus

	divisions := make([]string, 0, len(s.divisionTeams))
	for division := range s.divisionTeams {
		divisions = append(divisions, division)
	}
	sort.Strings(divisions)

	for _, division := range divisions {
		var selected []string
		if winner := ps.DivisionWinners[division]; winner != "" {
			selected = []string{winner}
		}
		statuses = append(statuses, s.buildStatus(ps, models.StageDivisionWinners, division,
			s.divisionTeams[division], selected, 1))
	}

	for _, conference := range s.conferences {
		statuses = append(statuses, s.buildStatus(ps, models.StageWildCards, conference,
			s.wildCardPool(ps, conference), ps.WildCards[conference], WildCardsPerConference))
	}
	for _, conference := range s.conferences {
		statuses = append(statuses, s.buildStatus(ps, models.StageWildCardRound, conference,
			s.qualifierPool(ps, conference), ps.WildCardRoundWinners[conference], WildCardWinnersPerConference))
	}
	for _, conference := range s.conferences {
		statuses = append(statuses, s.buildStatus(ps, models.StageDivisionalRound, conference,
			sortedCopy(ps.WildCardRoundWinners[conference]), ps.DivisionalRoundWinners[conference], DivisionalWinnersPerConference))
	}
	for _, conference := range s.conferences {
		var selected []string
		if champion := ps.ConferenceChampions[conference]; champion != "" {
			selected = []string{champion}
		}
		statuses = append(statuses, s.buildStatus(ps, models.StageConferenceChampions, conference,
			sortedCopy(ps.DivisionalRoundWinners[conference]), selected, 1))
	}

	var sbSelected []string
	if ps.SuperBowlChampion != "" {
		sbSelected = []string{ps.SuperBowlChampion}
	}
	statuses = append(statuses, s.buildStatus(ps, models.StageSuperBowl, "",
		sortedCopy(ps.TeamsAt(models.StageConferenceChampions)), sbSelected, 1))

	return statuses
}

func (s *BracketService) buildStatus(ps *models.PickSet, stage models.BracketStage, scope string, candidates, selected []string, required int) StageStatus {
	valid := 0
	seen := make(map[string]bool, len(selected))
	for _, team := range selected {
		if containsString(candidates, team) && !seen[team] {
			valid++
		}
		seen[team] = true
	}

	status := StageStatus{
		Stage:      stage,
		Scope:      scope,
		Candidates: candidates,
		Selected:   append([]string(nil), selected...),
		Required:   required,
		Remaining:  required - valid,
		Unlocked:   s.Unlocked(ps, stage),
	}
	status.Complete = status.Remaining == 0 && len(selected) == valid && valid == required

	switch {
	case !status.Unlocked:
		status.Message = "complete the previous round first"
	case status.Complete:
		status.Message = "complete"
	case status.Remaining < 0 || len(selected) > valid:
		status.Message = "too many teams selected"
	case status.Remaining == 1:
		status.Message = "select 1 more"
	default:
		status.Message = fmt.Sprintf("select %d more", status.Remaining)
	}

	return status
}

// wildCardPool is every team in the conference that is not a division
// winner under the current picks, sorted by name. The pools for wild cards
// and division winners are mutually exclusive by construction.
func (s *BracketService) wildCardPool(ps *models.PickSet, conference string) []string {
	winners := make(map[string]bool)
	for _, winner := range ps.DivisionWinners {
		if winner != "" {
			winners[winner] = true
		}
	}

	var pool []string
	for _, division := range s.confDivisions[conference] {
		for _, team := range s.divisionTeams[division] {
			if !winners[team] {
				pool = append(pool, team)
			}
		}
	}
	sort.Strings(pool)
	return pool
}

// qualifierPool is every playoff qualifier in the conference: its division
// winners plus its wild cards, sorted by name.
func (s *BracketService) qualifierPool(ps *models.PickSet, conference string) []string {
	var pool []string
	for _, division := range s.confDivisions[conference] {
		if winner := ps.DivisionWinners[division]; winner != "" {
			pool = append(pool, winner)
		}
	}
	pool = append(pool, ps.WildCards[conference]...)
	sort.Strings(pool)
	return pool
}

// validateSelection rejects out-of-pool teams and duplicates. Counts are not
// checked here: wrong cardinality is a recoverable incomplete-stage state,
// not a destructive error.
func (s *BracketService) validateSelection(teams, pool []string) error {
	seen := make(map[string]bool, len(teams))
	for _, team := range teams {
		if !containsString(pool, team) {
			s.logger.Debugf("Rejected %s: not in candidate pool %v", team, pool)
			return fmt.Errorf("%w: %s is not in the candidate pool", ErrInvalidSelection, team)
		}
		if seen[team] {
			s.logger.Debugf("Rejected %s: selected twice", team)
			return fmt.Errorf("%w: %s selected twice", ErrInvalidSelection, team)
		}
		seen[team] = true
	}
	return nil
}

// selectionSatisfied reports whether a selection has exactly the required
// count, no duplicates, and every team inside the candidate pool.
func selectionSatisfied(selected, pool []string, required int) bool {
	if len(selected) != required {
		return false
	}
	seen := make(map[string]bool, len(selected))
	for _, team := range selected {
		if seen[team] || !containsString(pool, team) {
			return false
		}
		seen[team] = true
	}
	return true
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func sortedCopy(list []string) []string {
	out := append([]string(nil), list...)
	sort.Strings(out)
	return out
}

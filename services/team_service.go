package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/models"
)

// ErrMissingData signals that the season dataset lacks a field or row the
// bracket needs. It is fatal to the simulator view only; the ranking views
// are unaffected.
var ErrMissingData = errors.New("missing upstream season data")

// TeamService builds the team universe for the season under simulation from
// the most recent year of master data.
type TeamService struct {
	repo   SeasonRepository
	logger *logging.Logger
}

// NewTeamService creates a new team service
func NewTeamService(repo SeasonRepository) *TeamService {
	return &TeamService{
		repo:   repo,
		logger: logging.WithPrefix("TeamService"),
	}
}

// BuildTeamUniverse returns every team of the most recent season, with
// division, derived conference, and base points, sorted by name. The second
// return value is the season year.
func (s *TeamService) BuildTeamUniverse(ctx context.Context) ([]models.Team, int, error) {
	rows, err := s.repo.GetFranchiseSeasons(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read franchise seasons: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%w: no franchise seasons loaded", ErrMissingData)
	}

	latest := 0
	for _, row := range rows {
		if row.Year > latest {
			latest = row.Year
		}
	}

	seen := make(map[string]bool)
	var teams []models.Team
	for _, row := range rows {
		if row.Year != latest {
			continue
		}
		if seen[row.Team] {
			return nil, 0, fmt.Errorf("%w: duplicate row for team %q in %d", ErrMissingData, row.Team, latest)
		}
		seen[row.Team] = true

		if row.Division == "" {
			return nil, 0, fmt.Errorf("%w: team %q has no division in %d", ErrMissingData, row.Team, latest)
		}

		teams = append(teams, models.Team{
			Name:       row.Team,
			Division:   row.Division,
			Conference: models.ConferenceFromDivision(row.Division),
			BasePoints: row.TotalPoints,
		})
	}

	if len(teams) == 0 {
		return nil, 0, fmt.Errorf("%w: no teams found for season %d", ErrMissingData, latest)
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	s.logger.Infof("Built team universe for %d: %d teams", latest, len(teams))
	return teams, latest, nil
}

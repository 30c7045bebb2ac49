package services

import (
	"context"
	"fmt"
	"sort"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/models"
)

// RankingFilter narrows the historical ranking views. Empty slices mean "all";
// ThroughYear caps the seasons included (0 = latest available).
type RankingFilter struct {
	Divisions   []string
	Teams       []string
	ThroughYear int
}

// RankingService filters and aggregates the historical dataset for the
// dashboard: the all-time table, the rank and winning-percentage charts, and
// the snapshot comparison.
type RankingService struct {
	repo    SeasonRepository
	minYear int
	logger  *logging.Logger
}

// NewRankingService creates a ranking service. minYear is the first season
// the rankings cover.
func NewRankingService(repo SeasonRepository, minYear int) *RankingService {
	return &RankingService{
		repo:    repo,
		minYear: minYear,
		logger:  logging.WithPrefix("RankingService"),
	}
}

// FilterOptions is what the dashboard needs to render its filter widgets.
type FilterOptions struct {
	Divisions []string
	Teams     []string // narrowed to the selected divisions when any are set
	MinYear   int
	MaxYear   int
}

// GetFilterOptions returns the selectable divisions, the team options under
// the division selection, and the year range of the dataset.
func (s *RankingService) GetFilterOptions(ctx context.Context, selectedDivisions []string) (*FilterOptions, error) {
	seasons, err := s.repo.GetFranchiseSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read franchise seasons: %w", err)
	}
	ranks, err := s.repo.GetYearlyRanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read yearly ranks: %w", err)
	}

	divisionSet := make(map[string]bool)
	teamSet := make(map[string]bool)
	wantDivision := toSet(selectedDivisions)
	for _, row := range seasons {
		if row.Division != "" {
			divisionSet[row.Division] = true
		}
		if len(wantDivision) == 0 || wantDivision[row.Division] {
			teamSet[row.Team] = true
		}
	}

	opts := &FilterOptions{
		Divisions: sortedKeys(divisionSet),
		Teams:     sortedKeys(teamSet),
		MinYear:   s.minYear,
	}
	for _, row := range ranks {
		if row.Year > opts.MaxYear {
			opts.MaxYear = row.Year
		}
	}
	return opts, nil
}

// resolveTeams returns the set of team names a filter selects: the explicit
// team selection if any, otherwise every team in the selected divisions,
// otherwise every team.
func (s *RankingService) resolveTeams(ctx context.Context, filter RankingFilter) (map[string]bool, error) {
	if len(filter.Teams) > 0 {
		return toSet(filter.Teams), nil
	}

	seasons, err := s.repo.GetFranchiseSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read franchise seasons: %w", err)
	}

	wantDivision := toSet(filter.Divisions)
	teams := make(map[string]bool)
	for _, row := range seasons {
		if len(wantDivision) == 0 || wantDivision[row.Division] {
			teams[row.Team] = true
		}
	}
	return teams, nil
}

// AllTimeRankings returns each selected franchise's rank as of the latest
// year at or before the filter's through-year, ordered best rank first.
func (s *RankingService) AllTimeRankings(ctx context.Context, filter RankingFilter) ([]models.AllTimeRank, error) {
	teams, err := s.resolveTeams(ctx, filter)
	if err != nil {
		return nil, err
	}
	ranks, err := s.repo.GetYearlyRanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read yearly ranks: %w", err)
	}

	latest := make(map[string]models.YearlyRank)
	for _, row := range ranks {
		if !teams[row.Team] {
			continue
		}
		if filter.ThroughYear > 0 && row.Year > filter.ThroughYear {
			continue
		}
		if current, ok := latest[row.Team]; !ok || row.Year > current.Year {
			latest[row.Team] = row
		}
	}

	results := make([]models.AllTimeRank, 0, len(latest))
	for team, row := range latest {
		results = append(results, models.AllTimeRank{Team: team, Year: row.Year, Rank: row.Rank})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Rank != results[j].Rank {
			return results[i].Rank < results[j].Rank
		}
		return results[i].Team < results[j].Team
	})
	return results, nil
}

// RankHistory returns one rank-over-time series per selected team for the
// line chart, years ascending, teams alphabetical.
func (s *RankingService) RankHistory(ctx context.Context, filter RankingFilter) ([]models.RankSeries, error) {
	teams, err := s.resolveTeams(ctx, filter)
	if err != nil {
		return nil, err
	}
	ranks, err := s.repo.GetYearlyRanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read yearly ranks: %w", err)
	}

	points := make(map[string][]models.YearlyRank)
	for _, row := range ranks {
		if !teams[row.Team] {
			continue
		}
		if filter.ThroughYear > 0 && row.Year > filter.ThroughYear {
			continue
		}
		points[row.Team] = append(points[row.Team], row)
	}

	series := make([]models.RankSeries, 0, len(points))
	for _, team := range sortedKeys(toSetFromMapKeys(points)) {
		rows := points[team]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })

		entry := models.RankSeries{Team: team}
		for _, row := range rows {
			entry.Years = append(entry.Years, row.Year)
			entry.Values = append(entry.Values, float64(row.Rank))
		}
		series = append(series, entry)
	}
	return series, nil
}

// WinPctHistory returns one winning-percentage series per selected team,
// years ascending, teams alphabetical.
func (s *RankingService) WinPctHistory(ctx context.Context, filter RankingFilter) ([]models.RankSeries, error) {
	teams, err := s.resolveTeams(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.GetYearlyWinPcts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read yearly winning percentages: %w", err)
	}

	points := make(map[string][]models.YearlyWinPct)
	for _, row := range rows {
		if !teams[row.Team] {
			continue
		}
		if filter.ThroughYear > 0 && row.Year > filter.ThroughYear {
			continue
		}
		points[row.Team] = append(points[row.Team], row)
	}

	series := make([]models.RankSeries, 0, len(points))
	for team := range points {
		teamRows := points[team]
		sort.Slice(teamRows, func(i, j int) bool { return teamRows[i].Year < teamRows[j].Year })

		entry := models.RankSeries{Team: team}
		for _, row := range teamRows {
			entry.Years = append(entry.Years, row.Year)
			entry.Values = append(entry.Values, row.Pct)
		}
		series = append(series, entry)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Team < series[j].Team })
	return series, nil
}

// SnapshotComparison aggregates each selected franchise's career totals and
// attaches its rank in the filter's through-year, ordered by that rank.
func (s *RankingService) SnapshotComparison(ctx context.Context, filter RankingFilter) ([]models.FranchiseSummary, error) {
	teams, err := s.resolveTeams(ctx, filter)
	if err != nil {
		return nil, err
	}
	seasons, err := s.repo.GetFranchiseSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read franchise seasons: %w", err)
	}
	ranks, err := s.repo.GetYearlyRanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read yearly ranks: %w", err)
	}

	rankInYear := make(map[string]int)
	if filter.ThroughYear > 0 {
		for _, row := range ranks {
			if row.Year == filter.ThroughYear {
				rankInYear[row.Team] = row.Rank
			}
		}
	} else {
		latestYear := make(map[string]int)
		for _, row := range ranks {
			if row.Year >= latestYear[row.Team] {
				latestYear[row.Team] = row.Year
				rankInYear[row.Team] = row.Rank
			}
		}
	}

	summaries := make(map[string]*models.FranchiseSummary)
	for _, row := range seasons {
		if !teams[row.Team] {
			continue
		}
		summary, ok := summaries[row.Team]
		if !ok {
			summary = &models.FranchiseSummary{
				Team:       row.Team,
				Division:   row.Division,
				RankInYear: rankInYear[row.Team],
			}
			summaries[row.Team] = summary
		}
		summary.SBWins += row.SBWins
		summary.SBAppearances += row.SBAppearances
		summary.CCAppearances += row.CCAppearances
		summary.DivisionTitles += row.DivisionTitle
		summary.MVPs += row.MVPs
	}

	results := make([]models.FranchiseSummary, 0, len(summaries))
	for _, summary := range summaries {
		results = append(results, *summary)
	}
	sort.Slice(results, func(i, j int) bool {
		ri, rj := results[i].RankInYear, results[j].RankInYear
		// Teams without a rank in the selected year sort last
		if ri == 0 {
			ri = 1 << 30
		}
		if rj == 0 {
			rj = 1 << 30
		}
		if ri != rj {
			return ri < rj
		}
		return results[i].Team < results[j].Team
	})
	return results, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func toSetFromMapKeys(m map[string][]models.YearlyRank) map[string]bool {
	set := make(map[string]bool, len(m))
	for k := range m {
		set[k] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

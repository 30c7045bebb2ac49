package services

import (
	"context"
	"testing"

	"nfl-rankings-go/database"
	"nfl-rankings-go/models"
)

func seedHistory(t *testing.T) *database.MemorySeasonRepository {
	t.Helper()
	repo := database.NewMemorySeasonRepository()
	ctx := context.Background()

	seasons := []models.FranchiseSeason{
		{Team: "Bills", Division: "AFC East", Year: 2023, TotalPoints: 88, SBAppearances: 1, DivisionTitle: 1},
		{Team: "Bills", Division: "AFC East", Year: 2024, TotalPoints: 95, CCAppearances: 1, DivisionTitle: 1},
		{Team: "Cowboys", Division: "NFC East", Year: 2023, TotalPoints: 85, SBWins: 1, SBAppearances: 1},
		{Team: "Cowboys", Division: "NFC East", Year: 2024, TotalPoints: 90},
		{Team: "Bears", Division: "NFC North", Year: 2024, TotalPoints: 70, MVPs: 1},
	}
	if err := repo.ReplaceFranchiseSeasons(ctx, seasons); err != nil {
		t.Fatalf("ReplaceFranchiseSeasons: %v", err)
	}

	ranks := []models.YearlyRank{
		{Team: "Bills", Year: 2023, Rank: 4},
		{Team: "Bills", Year: 2024, Rank: 2},
		{Team: "Cowboys", Year: 2023, Rank: 6},
		{Team: "Cowboys", Year: 2024, Rank: 5},
		{Team: "Bears", Year: 2024, Rank: 9},
	}
	if err := repo.ReplaceYearlyRanks(ctx, ranks); err != nil {
		t.Fatalf("ReplaceYearlyRanks: %v", err)
	}

	pcts := []models.YearlyWinPct{
		{Team: "Bills", Year: 2023, Pct: 0.62, Rank: 5},
		{Team: "Bills", Year: 2024, Pct: 0.71, Rank: 3},
		{Team: "Cowboys", Year: 2024, Pct: 0.53, Rank: 14},
	}
	if err := repo.ReplaceYearlyWinPcts(ctx, pcts); err != nil {
		t.Fatalf("ReplaceYearlyWinPcts: %v", err)
	}

	return repo
}

func TestGetFilterOptions(t *testing.T) {
	svc := NewRankingService(seedHistory(t), 1966)

	opts, err := svc.GetFilterOptions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetFilterOptions: %v", err)
	}
	wantDivisions := []string{"AFC East", "NFC East", "NFC North"}
	if len(opts.Divisions) != len(wantDivisions) {
		t.Fatalf("divisions = %v", opts.Divisions)
	}
	for i, d := range wantDivisions {
		if opts.Divisions[i] != d {
			t.Errorf("divisions[%d] = %q, want %q", i, opts.Divisions[i], d)
		}
	}
	if len(opts.Teams) != 3 {
		t.Errorf("teams = %v, want all three", opts.Teams)
	}
	if opts.MinYear != 1966 || opts.MaxYear != 2024 {
		t.Errorf("year range = %d..%d, want 1966..2024", opts.MinYear, opts.MaxYear)
	}

	// A division selection narrows the team options
	opts, err = svc.GetFilterOptions(context.Background(), []string{"NFC East"})
	if err != nil {
		t.Fatalf("GetFilterOptions: %v", err)
	}
	if len(opts.Teams) != 1 || opts.Teams[0] != "Cowboys" {
		t.Errorf("narrowed teams = %v, want [Cowboys]", opts.Teams)
	}
}

func TestAllTimeRankings(t *testing.T) {
	svc := NewRankingService(seedHistory(t), 1966)

	rows, err := svc.AllTimeRankings(context.Background(), RankingFilter{})
	if err != nil {
		t.Fatalf("AllTimeRankings: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Latest year of each team, best rank first
	if rows[0].Team != "Bills" || rows[0].Rank != 2 || rows[0].Year != 2024 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Team != "Cowboys" || rows[1].Rank != 5 {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	if rows[2].Team != "Bears" || rows[2].Rank != 9 {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestAllTimeRankings_ThroughYear(t *testing.T) {
	svc := NewRankingService(seedHistory(t), 1966)

	rows, err := svc.AllTimeRankings(context.Background(), RankingFilter{ThroughYear: 2023})
	if err != nil {
		t.Fatalf("AllTimeRankings: %v", err)
	}
	// The Bears have no 2023 rank, so only two teams remain and the 2023
	// ranks flip the order
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Team != "Bills" || rows[0].Rank != 4 || rows[0].Year != 2023 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Team != "Cowboys" || rows[1].Rank != 6 {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func TestAllTimeRankings_DivisionFilter(t *testing.T) {
	svc := NewRankingService(seedHistory(t), 1966)

	rows, err := svc.AllTimeRankings(context.Background(), RankingFilter{Divisions: []string{"AFC East"}})
	if err != nil {
		t.Fatalf("AllTimeRankings: %v", err)
	}
	if len(rows) != 1 || rows[0].Team != "Bills" {
		t.Errorf("rows = %+v, want only the Bills", rows)
	}
}

func TestRankHistory(t *testing.T) {
	svc := NewRankingService(seedHistory(t), 1966)

	series, err := svc.RankHistory(context.Background(), RankingFilter{Teams: []string{"Bills"}})
	if err != nil {
		t.Fatalf("RankHistory: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("got %d series, want 1", len(series))
	}
	s := series[0]
	if s.Team != "Bills" || len(s.Years) != 2 {
		t.Fatalf("series = %+v", s)
	}
	if s.Years[0] != 2023 || s.Years[1] != 2024 {
		t.Errorf("years not ascending: %v", s.Years)
	}
	if s.Values[0] != 4 || s.Values[1] != 2 {
		t.Errorf("values = %v", s.Values)
	}
}

func TestWinPctHistory_ThroughYear(t *testing.T) {
	svc := NewRankingService(seedHistory(t), 1966)

	series, err := svc.WinPctHistory(context.Background(), RankingFilter{ThroughYear: 2023})
	if err != nil {
		t.Fatalf("WinPctHistory: %v", err)
	}
	// Only the Bills have a 2023 winning percentage
	if len(series) != 1 || series[0].Team != "Bills" {
		t.Fatalf("series = %+v", series)
	}
	if len(series[0].Values) != 1 || series[0].Values[0] != 0.62 {
		t.Errorf("values = %v", series[0].Values)
	}
}

func TestSnapshotComparison(t *testing.T) {
	svc := NewRankingService(seedHistory(t), 1966)

	rows, err := svc.SnapshotComparison(context.Background(), RankingFilter{})
	if err != nil {
		t.Fatalf("SnapshotComparison: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	// Career sums across every season, ordered by latest-year rank
	bills := rows[0]
	if bills.Team != "Bills" || bills.RankInYear != 2 {
		t.Fatalf("rows[0] = %+v", bills)
	}
	if bills.SBAppearances != 1 || bills.CCAppearances != 1 || bills.DivisionTitles != 2 {
		t.Errorf("Bills career totals = %+v", bills)
	}
	cowboys := rows[1]
	if cowboys.Team != "Cowboys" || cowboys.SBWins != 1 || cowboys.SBAppearances != 1 {
		t.Errorf("rows[1] = %+v", cowboys)
	}
	if rows[2].Team != "Bears" || rows[2].MVPs != 1 {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestSnapshotComparison_UnrankedSortsLast(t *testing.T) {
	repo := seedHistory(t)
	ctx := context.Background()
	seasons, _ := repo.GetFranchiseSeasons(ctx)
	seasons = append(seasons, models.FranchiseSeason{Team: "Texans", Division: "AFC South", Year: 2024, TotalPoints: 40})
	if err := repo.ReplaceFranchiseSeasons(ctx, seasons); err != nil {
		t.Fatalf("ReplaceFranchiseSeasons: %v", err)
	}

	rows, err := NewRankingService(repo, 1966).SnapshotComparison(ctx, RankingFilter{})
	if err != nil {
		t.Fatalf("SnapshotComparison: %v", err)
	}
	if rows[len(rows)-1].Team != "Texans" {
		t.Errorf("unranked team should sort last, got %+v", rows)
	}
}

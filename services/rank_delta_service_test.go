package services

import (
	"testing"

	"nfl-rankings-go/models"
)

func deltaTeams(points map[string]int) []models.Team {
	var teams []models.Team
	for name, base := range points {
		teams = append(teams, models.Team{Name: name, Division: "AFC East", Conference: "AFC", BasePoints: base})
	}
	return teams
}

func TestBuildResults_NoPicksKeepsRanks(t *testing.T) {
	teams := deltaTeams(map[string]int{"Bills": 100, "Dolphins": 90, "Jets": 80})
	results := NewRankDeltaService(NewScoringService()).BuildResults(teams, models.NewPickSet())

	for _, result := range results {
		if result.OriginalRank != result.SimulatedRank {
			t.Errorf("%s moved without picks: %d -> %d", result.Team, result.OriginalRank, result.SimulatedRank)
		}
		if result.Movement != models.MovementUnchanged {
			t.Errorf("%s Movement = %q, want unchanged", result.Team, result.Movement)
		}
	}
	if results[0].Team != "Bills" || results[0].OriginalRank != 1 {
		t.Errorf("top result = %+v, want Bills at rank 1", results[0])
	}
}

func TestBuildResults_TieBrokenByName(t *testing.T) {
	// Equal scores rank in team-name order, deterministically
	teams := deltaTeams(map[string]int{"Vikings": 90, "Bears": 90, "Lions": 95})
	results := NewRankDeltaService(NewScoringService()).BuildResults(teams, models.NewPickSet())

	ranks := make(map[string]int)
	for _, result := range results {
		ranks[result.Team] = result.OriginalRank
	}
	if ranks["Lions"] != 1 || ranks["Bears"] != 2 || ranks["Vikings"] != 3 {
		t.Errorf("tie ranks = %v, want Lions 1, Bears 2, Vikings 3", ranks)
	}
}

func TestBuildResults_ScenarioC(t *testing.T) {
	// Two teams tied at 90; a +2 division winner bonus must rank the winner
	// at or above the other
	s := NewBracketService([]models.Team{
		{Name: "Yaks", Division: "AFC East", Conference: "AFC", BasePoints: 90},
		{Name: "Zebras", Division: "AFC East", Conference: "AFC", BasePoints: 90},
	})
	ps := models.NewPickSet()
	if err := s.SelectDivisionWinner(ps, "AFC East", "Yaks"); err != nil {
		t.Fatalf("SelectDivisionWinner: %v", err)
	}

	results := NewRankDeltaService(NewScoringService()).BuildResults(s.Teams(), ps)
	ranks := make(map[string]*models.SimulationResult)
	for i := range results {
		ranks[results[i].Team] = &results[i]
	}
	if ranks["Yaks"].SimulatedRank > ranks["Zebras"].SimulatedRank {
		t.Errorf("Yaks rank %d worse than Zebras rank %d despite bonus",
			ranks["Yaks"].SimulatedRank, ranks["Zebras"].SimulatedRank)
	}
	if ranks["Yaks"].Movement != models.MovementUnchanged && ranks["Yaks"].Movement != models.MovementUp {
		t.Errorf("Yaks Movement = %q", ranks["Yaks"].Movement)
	}
}

func TestBuildResults_RankConsistency(t *testing.T) {
	s := newTestBracket()
	ps := models.NewPickSet()
	pickFullBracket(t, s, ps)

	results := NewRankDeltaService(NewScoringService()).BuildResults(s.Teams(), ps)

	originalAtOne, simulatedAtOne := 0, 0
	seenOriginal := make(map[int]bool)
	seenSimulated := make(map[int]bool)
	for _, result := range results {
		if result.OriginalRank == 1 {
			originalAtOne++
		}
		if result.SimulatedRank == 1 {
			simulatedAtOne++
		}
		if seenOriginal[result.OriginalRank] {
			t.Errorf("duplicate original rank %d", result.OriginalRank)
		}
		if seenSimulated[result.SimulatedRank] {
			t.Errorf("duplicate simulated rank %d", result.SimulatedRank)
		}
		seenOriginal[result.OriginalRank] = true
		seenSimulated[result.SimulatedRank] = true
	}
	if originalAtOne != 1 || simulatedAtOne != 1 {
		t.Errorf("rank 1 held by %d (original) and %d (simulated) teams, want exactly 1 each",
			originalAtOne, simulatedAtOne)
	}
}

func TestBuildResults_RoundTripProperty(t *testing.T) {
	s := newTestBracket()
	ps := models.NewPickSet()
	pickFullBracket(t, s, ps)

	ledger := NewScoringService().ComputeBonusLedger(ps)
	results := NewRankDeltaService(NewScoringService()).BuildResults(s.Teams(), ps)

	for _, result := range results {
		if result.SimulatedTotal-result.BasePoints != ledger[result.Team] {
			t.Errorf("%s: total %d - base %d != ledger %d",
				result.Team, result.SimulatedTotal, result.BasePoints, ledger[result.Team])
		}
	}
}

func TestBuildResults_MovementDirections(t *testing.T) {
	s := newTestBracket()
	ps := models.NewPickSet()
	pickFullBracket(t, s, ps)

	results := NewRankDeltaService(NewScoringService()).BuildResults(s.Teams(), ps)

	for _, result := range results {
		want := models.MovementUnchanged
		if result.RankChange > 0 {
			want = models.MovementUp
		} else if result.RankChange < 0 {
			want = models.MovementDown
		}
		if result.Movement != want {
			t.Errorf("%s: RankChange %d but Movement %q", result.Team, result.RankChange, result.Movement)
		}
		if result.RankChange != result.OriginalRank-result.SimulatedRank {
			t.Errorf("%s: RankChange %d != %d - %d",
				result.Team, result.RankChange, result.OriginalRank, result.SimulatedRank)
		}
	}

	// Ordered by simulated rank
	for i := 1; i < len(results); i++ {
		if results[i].SimulatedRank != results[i-1].SimulatedRank+1 {
			t.Fatalf("results not ordered by simulated rank at index %d", i)
		}
	}
}

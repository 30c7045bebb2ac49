package models

import (
	"reflect"
	"sort"
	"testing"
)

func TestAllStagesOrder(t *testing.T) {
	stages := AllStages()
	if len(stages) != 6 {
		t.Fatalf("got %d stages, want 6", len(stages))
	}
	for i := 1; i < len(stages); i++ {
		if stages[i] <= stages[i-1] {
			t.Errorf("stages out of order at %d: %v then %v", i, stages[i-1], stages[i])
		}
	}
	if stages[0] != StageDivisionWinners || stages[5] != StageSuperBowl {
		t.Errorf("stage bounds = %v .. %v", stages[0], stages[5])
	}
}

func TestPickSetReset(t *testing.T) {
	ps := NewPickSet()
	ps.DivisionWinners["AFC East"] = "Bills"
	ps.WildCards["AFC"] = []string{"Dolphins", "Bengals"}
	ps.ConferenceChampions["AFC"] = "Bills"
	ps.SuperBowlChampion = "Bills"

	ps.Reset()
	if !reflect.DeepEqual(ps, NewPickSet()) {
		t.Errorf("PickSet not empty after reset: %+v", ps)
	}

	ps.Reset()
	if !reflect.DeepEqual(ps, NewPickSet()) {
		t.Errorf("reset is not idempotent: %+v", ps)
	}
}

func TestPickSetTeamsAt(t *testing.T) {
	ps := NewPickSet()
	ps.DivisionWinners["AFC East"] = "Bills"
	ps.DivisionWinners["AFC North"] = "" // unselected sentinel
	ps.WildCards["AFC"] = []string{"Dolphins", "Bengals"}
	ps.WildCards["NFC"] = []string{"Eagles"}

	winners := ps.TeamsAt(StageDivisionWinners)
	if len(winners) != 1 || winners[0] != "Bills" {
		t.Errorf("division winners = %v, want [Bills]", winners)
	}

	wildCards := ps.TeamsAt(StageWildCards)
	sort.Strings(wildCards)
	want := []string{"Bengals", "Dolphins", "Eagles"}
	if !reflect.DeepEqual(wildCards, want) {
		t.Errorf("wild cards = %v, want %v", wildCards, want)
	}

	if got := ps.TeamsAt(StageSuperBowl); got != nil {
		t.Errorf("empty champion should yield no teams, got %v", got)
	}
	ps.SuperBowlChampion = "Bills"
	if got := ps.TeamsAt(StageSuperBowl); len(got) != 1 || got[0] != "Bills" {
		t.Errorf("super bowl teams = %v, want [Bills]", got)
	}
}

func TestConferenceFromDivision(t *testing.T) {
	cases := []struct {
		division string
		want     string
	}{
		{"AFC East", "AFC"},
		{"NFC North", "NFC"},
		{"NFC", "NFC"},
		{"AF", "AF"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ConferenceFromDivision(tc.division); got != tc.want {
			t.Errorf("ConferenceFromDivision(%q) = %q, want %q", tc.division, got, tc.want)
		}
	}
}

func TestSimulationResultMovement(t *testing.T) {
	up := SimulationResult{Movement: MovementUp}
	down := SimulationResult{Movement: MovementDown}
	flat := SimulationResult{Movement: MovementUnchanged}

	if up.MovementArrow() != "▲" || down.MovementArrow() != "▼" || flat.MovementArrow() != "—" {
		t.Errorf("arrows = %q %q %q", up.MovementArrow(), down.MovementArrow(), flat.MovementArrow())
	}
	if up.GetMovementClass() != "movement-up" || down.GetMovementClass() != "movement-down" || flat.GetMovementClass() != "movement-none" {
		t.Errorf("classes = %q %q %q", up.GetMovementClass(), down.GetMovementClass(), flat.GetMovementClass())
	}
}

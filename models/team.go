package models

import "strings"

// Team represents one franchise in the season under simulation.
// Immutable for the duration of a simulation run.
type Team struct {
	Name       string `bson:"name" json:"name"`
	Division   string `bson:"division" json:"division"`
	Conference string `bson:"conference" json:"conference"`
	BasePoints int    `bson:"base_points" json:"base_points"` // season-end "Total Team Points"
}

// ConferenceFromDivision derives the conference from a division name.
// Divisions are named "AFC East", "NFC North", etc., so the conference is the
// first three characters. This is a documented simplification of the source
// data rather than a real conference lookup; it is computed once when the
// team universe is built, never re-parsed per stage.
func ConferenceFromDivision(division string) string {
	division = strings.TrimSpace(division)
	if len(division) < 3 {
		return division
	}
	return division[:3]
}

// String returns a string representation of the team
func (t *Team) String() string {
	return t.Name + " (" + t.Division + ")"
}

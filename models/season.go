package models

// FranchiseSeason is one Master Sheet row: a franchise's totals for one year.
type FranchiseSeason struct {
	Team          string `bson:"team" json:"team"`
	Division      string `bson:"division" json:"division"`
	Year          int    `bson:"year" json:"year"`
	TotalPoints   int    `bson:"total_points" json:"total_points"`
	SBWins        int    `bson:"sb_wins" json:"sb_wins"`
	SBAppearances int    `bson:"sb_appearances" json:"sb_appearances"`
	CCAppearances int    `bson:"cc_appearances" json:"cc_appearances"`
	DivisionTitle int    `bson:"division_title" json:"division_title"`
	MVPs          int    `bson:"mvps" json:"mvps"`
}

// YearlyRank is one melted cell of the "Rank by Year" sheet.
type YearlyRank struct {
	Team string `bson:"team" json:"team"`
	Year int    `bson:"year" json:"year"`
	Rank int    `bson:"rank" json:"rank"`
}

// YearlyWinPct merges the "Winning % Over Time" and "Winning % Rank Over Time"
// sheets on (team, year).
type YearlyWinPct struct {
	Team string  `bson:"team" json:"team"`
	Year int     `bson:"year" json:"year"`
	Pct  float64 `bson:"pct" json:"pct"`
	Rank int     `bson:"rank" json:"rank"`
}

// FranchiseSummary is a career aggregate of a franchise's master rows for the
// snapshot comparison table, with the rank held in the selected year.
type FranchiseSummary struct {
	Team           string `json:"team"`
	Division       string `json:"division"`
	RankInYear     int    `json:"rank_in_year"`
	SBWins         int    `json:"sb_wins"`
	SBAppearances  int    `json:"sb_appearances"`
	CCAppearances  int    `json:"cc_appearances"`
	DivisionTitles int    `json:"division_titles"`
	MVPs           int    `json:"mvps"`
}

// AllTimeRank is a franchise's overall rank as of a chosen through-year.
type AllTimeRank struct {
	Team string `json:"team"`
	Year int    `json:"year"` // latest year <= through-year with a rank
	Rank int    `json:"rank"`
}

// RankSeries is one team's line on the rank-over-time chart.
type RankSeries struct {
	Team   string    `json:"team"`
	Years  []int     `json:"years"`
	Values []float64 `json:"values"`
}

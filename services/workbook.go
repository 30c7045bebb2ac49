package services

import (
	"fmt"
	"strconv"
	"strings"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/models"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names as they appear in nfl_data.xlsm.
const (
	sheetMaster      = "Master Sheet"
	sheetRankByYear  = "Rank by Year"
	sheetWinPctRank  = "Winning % Rank Over Time"
	sheetWinPct      = "Winning % Over Time"
)

// SeasonDataset holds everything parsed from the workbook, reshaped into
// normalized (team, year, value) rows.
type SeasonDataset struct {
	FranchiseSeasons []models.FranchiseSeason
	YearlyRanks      []models.YearlyRank
	YearlyWinPcts    []models.YearlyWinPct
}

// WorkbookLoader reads the season workbook and reshapes its sheets. The
// Master Sheet is row-per-(team, year); the other sheets are year-by-team
// matrices that get melted into long form.
type WorkbookLoader struct {
	logger *logging.Logger
}

// NewWorkbookLoader creates a new workbook loader
func NewWorkbookLoader() *WorkbookLoader {
	return &WorkbookLoader{
		logger: logging.WithPrefix("WorkbookLoader"),
	}
}

// LoadFile opens and parses the workbook at path
func (l *WorkbookLoader) LoadFile(path string) (*SeasonDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	return l.ParseWorkbook(f)
}

// ParseWorkbook parses an already-open workbook
func (l *WorkbookLoader) ParseWorkbook(f *excelize.File) (*SeasonDataset, error) {
	seasons, err := l.parseMasterSheet(f)
	if err != nil {
		return nil, err
	}

	ranks, err := l.meltYearTeamSheet(f, sheetRankByYear)
	if err != nil {
		return nil, err
	}

	winPcts, err := l.parseWinPctSheets(f)
	if err != nil {
		return nil, err
	}

	yearlyRanks := make([]models.YearlyRank, 0, len(ranks))
	for _, cell := range ranks {
		yearlyRanks = append(yearlyRanks, models.YearlyRank{
			Team: cell.team,
			Year: cell.year,
			Rank: int(cell.value),
		})
	}

	l.logger.Infof("Parsed workbook: %d franchise seasons, %d rank rows, %d winning-pct rows",
		len(seasons), len(yearlyRanks), len(winPcts))

	return &SeasonDataset{
		FranchiseSeasons: seasons,
		YearlyRanks:      yearlyRanks,
		YearlyWinPcts:    winPcts,
	}, nil
}

// masterIndex maps Master Sheet columns by header name. Missing optional
// columns stay -1.
type masterIndex struct {
	team, division, year, totalPoints  int
	sbWin, sbApp, ccApp, divTitle, mvp int
}

func buildMasterIndex(headers []string) masterIndex {
	idx := masterIndex{
		team: -1, division: -1, year: -1, totalPoints: -1,
		sbWin: -1, sbApp: -1, ccApp: -1, divTitle: -1, mvp: -1,
	}
	for i, h := range headers {
		switch strings.TrimSpace(h) {
		case "Team":
			idx.team = i
		case "Division":
			idx.division = i
		case "Year":
			idx.year = i
		case "Total Team Points":
			idx.totalPoints = i
		case "SB Win":
			idx.sbWin = i
		case "SB App":
			idx.sbApp = i
		case "CC app":
			idx.ccApp = i
		case "Division Title?":
			idx.divTitle = i
		case "MVP":
			idx.mvp = i
		}
	}
	return idx
}

func (l *WorkbookLoader) parseMasterSheet(f *excelize.File) ([]models.FranchiseSeason, error) {
	rows, err := f.GetRows(sheetMaster)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetMaster, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheetMaster)
	}

	idx := buildMasterIndex(rows[0])
	if idx.team < 0 || idx.division < 0 || idx.year < 0 || idx.totalPoints < 0 {
		return nil, fmt.Errorf("sheet %q is missing required columns (Team, Division, Year, Total Team Points)", sheetMaster)
	}

	var seasons []models.FranchiseSeason
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]

		team := cellString(row, idx.team)
		if team == "" {
			continue
		}

		season := models.FranchiseSeason{
			Team:          team,
			Division:      cellString(row, idx.division),
			Year:          cellInt(row, idx.year),
			TotalPoints:   cellInt(row, idx.totalPoints),
			SBWins:        cellInt(row, idx.sbWin),
			SBAppearances: cellInt(row, idx.sbApp),
			CCAppearances: cellInt(row, idx.ccApp),
			DivisionTitle: cellInt(row, idx.divTitle),
			MVPs:          cellInt(row, idx.mvp),
		}
		if season.Year == 0 {
			l.logger.Warnf("Skipping %q row %d: no year", sheetMaster, rowIdx+1)
			continue
		}

		seasons = append(seasons, season)
	}

	return seasons, nil
}

// meltedCell is one (team, year, value) triple melted out of a matrix sheet.
type meltedCell struct {
	team  string
	year  int
	value float64
}

// meltYearTeamSheet reshapes a wide sheet (rows = years, columns = teams)
// into long form, dropping blank cells.
func (l *WorkbookLoader) meltYearTeamSheet(f *excelize.File, sheet string) ([]meltedCell, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	headers := rows[0]
	var cells []meltedCell
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		year := cellInt(row, 0)
		if year == 0 {
			continue
		}

		for col := 1; col < len(row) && col < len(headers); col++ {
			team := strings.TrimSpace(headers[col])
			raw := strings.TrimSpace(row[col])
			if team == "" || raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				l.logger.Warnf("Skipping %q cell %s/%d: %v", sheet, team, year, err)
				continue
			}
			cells = append(cells, meltedCell{team: team, year: year, value: value})
		}
	}

	return cells, nil
}

// parseWinPctSheets melts both winning-percentage sheets and merges them on
// (team, year).
func (l *WorkbookLoader) parseWinPctSheets(f *excelize.File) ([]models.YearlyWinPct, error) {
	pcts, err := l.meltYearTeamSheet(f, sheetWinPct)
	if err != nil {
		return nil, err
	}
	rankCells, err := l.meltYearTeamSheet(f, sheetWinPctRank)
	if err != nil {
		return nil, err
	}

	type key struct {
		team string
		year int
	}
	rankByKey := make(map[key]int, len(rankCells))
	for _, cell := range rankCells {
		rankByKey[key{cell.team, cell.year}] = int(cell.value)
	}

	merged := make([]models.YearlyWinPct, 0, len(pcts))
	for _, cell := range pcts {
		merged = append(merged, models.YearlyWinPct{
			Team: cell.team,
			Year: cell.year,
			Pct:  cell.value,
			Rank: rankByKey[key{cell.team, cell.year}],
		})
	}

	return merged, nil
}

func cellString(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// cellInt parses an integral cell. Excel frequently renders counts as
// "1" or "1.0" depending on cell formatting, so parse as float first.
func cellInt(row []string, col int) int {
	raw := cellString(row, col)
	if raw == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(v)
	}
	return 0
}

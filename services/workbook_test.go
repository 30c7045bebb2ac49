package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildTestWorkbook assembles a small in-memory workbook shaped like
// nfl_data.xlsm: a Master Sheet plus the three year-by-team matrix sheets.
func buildTestWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	mustRow := func(sheet, cell string, values []interface{}) {
		t.Helper()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("SetSheetRow(%s, %s): %v", sheet, cell, err)
		}
	}

	for _, sheet := range []string{sheetMaster, sheetRankByYear, sheetWinPctRank, sheetWinPct} {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet(%s): %v", sheet, err)
		}
	}

	mustRow(sheetMaster, "A1", []interface{}{
		"Team", "Division", "Year", "Total Team Points", "SB Win", "SB App", "CC app", "Division Title?", "MVP",
	})
	mustRow(sheetMaster, "A2", []interface{}{"Bills", "AFC East", 2023, 88, 0, 0, 1, 1, 1})
	mustRow(sheetMaster, "A3", []interface{}{"Bills", "AFC East", 2024, 95, 0, 1, 1, 1, 0})
	mustRow(sheetMaster, "A4", []interface{}{"Cowboys", "NFC East", 2024, 90, 0, 0, 0, 0, 0})
	// Row with no team name gets skipped
	mustRow(sheetMaster, "A5", []interface{}{"", "NFC East", 2024, 10, 0, 0, 0, 0, 0})

	mustRow(sheetRankByYear, "A1", []interface{}{"Year", "Bills", "Cowboys"})
	mustRow(sheetRankByYear, "A2", []interface{}{2023, 5, ""}) // blank cells are dropped by the melt
	mustRow(sheetRankByYear, "A3", []interface{}{2024, 3, 7})

	mustRow(sheetWinPct, "A1", []interface{}{"Year", "Bills", "Cowboys"})
	mustRow(sheetWinPct, "A2", []interface{}{2024, 0.706, 0.529})

	mustRow(sheetWinPctRank, "A1", []interface{}{"Year", "Bills", "Cowboys"})
	mustRow(sheetWinPctRank, "A2", []interface{}{2024, 4, 15})

	return f
}

func TestParseWorkbook(t *testing.T) {
	f := buildTestWorkbook(t)
	dataset, err := NewWorkbookLoader().ParseWorkbook(f)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}

	if len(dataset.FranchiseSeasons) != 3 {
		t.Fatalf("FranchiseSeasons len = %d, want 3", len(dataset.FranchiseSeasons))
	}
	first := dataset.FranchiseSeasons[0]
	if first.Team != "Bills" || first.Year != 2023 || first.TotalPoints != 88 {
		t.Errorf("first season row = %+v", first)
	}
	if first.CCAppearances != 1 || first.MVPs != 1 {
		t.Errorf("first season stats = %+v", first)
	}

	// 2023 Cowboys cell was blank, so only 3 rank rows survive the melt
	if len(dataset.YearlyRanks) != 3 {
		t.Fatalf("YearlyRanks len = %d, want 3", len(dataset.YearlyRanks))
	}
	for _, row := range dataset.YearlyRanks {
		if row.Team == "Cowboys" && row.Year == 2023 {
			t.Error("blank cell survived the melt")
		}
	}

	if len(dataset.YearlyWinPcts) != 2 {
		t.Fatalf("YearlyWinPcts len = %d, want 2", len(dataset.YearlyWinPcts))
	}
	for _, row := range dataset.YearlyWinPcts {
		switch row.Team {
		case "Bills":
			if row.Pct != 0.706 || row.Rank != 4 {
				t.Errorf("Bills winning pct row = %+v", row)
			}
		case "Cowboys":
			if row.Pct != 0.529 || row.Rank != 15 {
				t.Errorf("Cowboys winning pct row = %+v", row)
			}
		}
	}
}

func TestParseWorkbook_MissingRequiredColumns(t *testing.T) {
	f := excelize.NewFile()
	for _, sheet := range []string{sheetMaster, sheetRankByYear, sheetWinPctRank, sheetWinPct} {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet(%s): %v", sheet, err)
		}
	}
	headers := []interface{}{"Team", "Year"} // no Division, no Total Team Points
	if err := f.SetSheetRow(sheetMaster, "A1", &headers); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	row := []interface{}{"Bills", 2024}
	if err := f.SetSheetRow(sheetMaster, "A2", &row); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}

	if _, err := NewWorkbookLoader().ParseWorkbook(f); err == nil {
		t.Fatal("expected error for missing required columns")
	}
}

func TestLoadFile_MissingWorkbook(t *testing.T) {
	if _, err := NewWorkbookLoader().LoadFile("testdata/does-not-exist.xlsm"); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}

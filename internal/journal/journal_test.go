package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"lab-journal-service/internal/loader"
	"lab-journal-service/internal/matcher"
	"lab-journal-service/internal/models"
	"lab-journal-service/internal/textnorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(sheet, rawDep, building string, date time.Time) *models.JournalRecord {
	return &models.JournalRecord{
		Sheet:                sheet,
		RawDepartment:        rawDep,
		NormalizedDepartment: textnorm.Normalize(rawDep),
		Building:             building,
		Date:                 date,
	}
}

// testJournal assembles a Journal around pre-built records, bypassing
// workbook I/O.
func testJournal(t *testing.T, sheets map[string][]*models.JournalRecord) *Journal {
	t.Helper()

	j, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	j.order = j.loader.Config().Sheets
	for name, records := range sheets {
		sd := models.NewSheetData(name, nil)
		sd.Records = records
		j.sheets[name] = sd
	}
	return j
}

func TestUniqueRawDepartments(t *testing.T) {
	j := testJournal(t, map[string][]*models.JournalRecord{
		"Абиотические": {
			record("Абиотические", "1 АФО", "", day(2025, 1, 5)),
			record("Абиотические", "  1 АФО ", "", day(2025, 1, 6)),
			record("Абиотические", "оперблок", "главный 2", day(2025, 1, 5)),
		},
		"Воздух": {
			record("Воздух", "1 АФО", "", day(2025, 1, 5)),
		},
	})

	got := j.UniqueRawDepartments()
	want := []string{"1 АФО", "оперблок"}
	if len(got) != len(want) {
		t.Fatalf("unique departments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unique[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApplyMappingEndToEnd(t *testing.T) {
	j := testJournal(t, map[string][]*models.JournalRecord{
		"Абиотические": {
			record("Абиотические", "1 афо ", "", day(2025, 1, 5)),
		},
	})

	report := j.ApplyMapping([]string{"1АФО"}, nil)

	if report.Total != 1 {
		t.Fatalf("total = %d, want 1", report.Total)
	}
	if report.MethodCounts[matcher.MethodExactNorm] != 1 {
		t.Errorf("method counts = %v, want one exact_norm", report.MethodCounts)
	}
	if got := j.Sheet("Абиотические").Records[0].CanonicalDepartment; got != "1АФО" {
		t.Errorf("canonical = %q, want 1АФО", got)
	}

	dates := j.DatesForDepartment("1АФО")
	if len(dates) != 1 || !dates[0].Equal(day(2025, 1, 5)) {
		t.Errorf("dates = %v, want [2025-01-05]", dates)
	}

	rows := j.RowsFor("Абиотические", "1АФО", day(2025, 1, 5))
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1", len(rows))
	}
}

func TestApplyMappingStructuralAndUnresolved(t *testing.T) {
	j := testJournal(t, map[string][]*models.JournalRecord{
		"Воздух": {
			record("Воздух", "оперблок 2 этаж", "главный корпус", day(2025, 2, 1)),
			record("Воздух", "загадочное отделение", "", day(2025, 2, 1)),
		},
	})

	report := j.ApplyMapping(nil, map[string]string{"оперблок 2 этаж": "НЕ ДОЛЖЕН ПОБЕДИТЬ"})

	if report.MethodCounts[matcher.MethodStructural] != 1 {
		t.Errorf("structural count = %d, want 1", report.MethodCounts[matcher.MethodStructural])
	}
	if got := j.Sheet("Воздух").Records[0].CanonicalDepartment; got != "ОПЕРБЛОК 2 ЭТАЖ" {
		t.Errorf("canonical = %q, want ОПЕРБЛОК 2 ЭТАЖ", got)
	}

	unknown := j.UnknownDepartments()
	if len(unknown) != 1 || unknown[0] != "загадочное отделение" {
		t.Errorf("unknown = %v", unknown)
	}
	if report.UnresolvedCount("загадочное отделение") != 1 {
		t.Errorf("unresolved count = %d, want 1", report.UnresolvedCount("загадочное отделение"))
	}
	if rate := report.ResolutionRate(); rate != 0.5 {
		t.Errorf("resolution rate = %v, want 0.5", rate)
	}
}

func TestUnknownBeforeMapping(t *testing.T) {
	j := testJournal(t, map[string][]*models.JournalRecord{
		"Персонал": {
			record("Персонал", "1АФО", "", day(2025, 1, 5)),
		},
	})

	unknown := j.UnknownDepartments()
	if len(unknown) != 1 || unknown[0] != "1АФО" {
		t.Errorf("pre-mapping unknown = %v, want all departments", unknown)
	}
}

func TestUnresolvedRowsQueryableByRawText(t *testing.T) {
	j := testJournal(t, map[string][]*models.JournalRecord{
		"Воздух": {
			record("Воздух", " новое отделение ", "", day(2025, 3, 1)),
		},
	})
	j.ApplyMapping([]string{"1АФО"}, nil)

	dates := j.DatesForDepartment("новое отделение")
	if len(dates) != 1 {
		t.Fatalf("unresolved department not queryable by raw text: %v", dates)
	}
}

func TestDatesNewestFirst(t *testing.T) {
	j := testJournal(t, map[string][]*models.JournalRecord{
		"Абиотические": {
			record("Абиотические", "1АФО", "", day(2025, 1, 5)),
			record("Абиотические", "1АФО", "", day(2025, 3, 1)),
		},
		"Воздух": {
			record("Воздух", "1АФО", "", day(2025, 2, 10)),
			record("Воздух", "1АФО", "", day(2025, 1, 5)), // duplicate day
		},
	})
	j.ApplyMapping([]string{"1АФО"}, nil)

	dates := j.DatesForDepartment("1АФО")
	want := []time.Time{day(2025, 3, 1), day(2025, 2, 10), day(2025, 1, 5)}
	if len(dates) != len(want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
		}
	}

	all := j.AllDates()
	if len(all) != 3 || !all[0].Equal(day(2025, 3, 1)) {
		t.Errorf("AllDates = %v", all)
	}
}

func TestRowsForAll(t *testing.T) {
	j := testJournal(t, map[string][]*models.JournalRecord{
		"Абиотические": {
			record("Абиотические", "1АФО", "", day(2025, 1, 5)),
		},
		"Воздух": {
			record("Воздух", "1АФО", "", day(2025, 1, 5)),
			record("Воздух", "1АФО", "", day(2025, 1, 6)),
		},
		"Персонал": {
			record("Персонал", "2ХО", "", day(2025, 1, 5)),
		},
	})
	j.ApplyMapping([]string{"1АФО", "2ХО"}, nil)

	rows := j.RowsForAll("1АФО", day(2025, 1, 5))
	if len(rows) != 2 {
		t.Fatalf("sheets with rows = %d, want 2", len(rows))
	}
	if len(rows["Воздух"]) != 1 {
		t.Errorf("Воздух rows = %d, want 1", len(rows["Воздух"]))
	}
	if _, ok := rows["Персонал"]; ok {
		t.Error("sheet without matches must be omitted")
	}

	all := j.RowsForDate("Воздух", day(2025, 1, 5))
	if len(all) != 1 {
		t.Errorf("RowsForDate = %d rows, want 1", len(all))
	}
	if j.RowsForDate("нет такого листа", day(2025, 1, 5)) != nil {
		t.Error("unknown sheet must yield nil")
	}
}

func TestLoadResetsMappingState(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Абиотические"); err != nil {
		t.Fatal(err)
	}
	rows := [][]interface{}{
		{"Дата исследования", "Подразделение"},
		{"05.01.2025", "1АФО"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Абиотические", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "journal.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	cfg := loader.DefaultConfig()
	cfg.Sheets = []string{"Абиотические"}
	j, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := j.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	j.ApplyMapping([]string{"1АФО"}, nil)
	if j.LastReport() == nil {
		t.Fatal("expected report after mapping")
	}

	if err := j.Load(path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if j.LastReport() != nil {
		t.Error("reload must clear the previous mapping report")
	}
	if j.Path() != path {
		t.Errorf("path = %q", j.Path())
	}
}

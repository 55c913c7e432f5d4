package reporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"lab-journal-service/internal/journal"
	"lab-journal-service/internal/matcher"
	"lab-journal-service/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleReport() *journal.ResolutionReport {
	rr := journal.NewResolutionReport()
	date := day(2025, 1, 5)

	resolved := &models.JournalRecord{
		Sheet:                "Абиотические",
		RawDepartment:        "1 АФО",
		NormalizedDepartment: "1 АФО",
		Date:                 date,
		CanonicalDepartment:  "1АФО",
	}
	rr.Observe(resolved, matcher.MethodExactNorm)
	rr.Observe(resolved, matcher.MethodExactNorm)

	rr.Observe(&models.JournalRecord{
		Sheet:                "Воздух",
		RawDepartment:        "оперблок",
		NormalizedDepartment: "оперблок",
		Date:                 date,
		CanonicalDepartment:  "ОПЕРБЛОК 2 ЭТАЖ",
	}, matcher.MethodStructural)

	rr.Observe(&models.JournalRecord{
		Sheet:                "Воздух",
		RawDepartment:        "загадка",
		NormalizedDepartment: "загадка",
		Date:                 date,
	}, matcher.MethodUnresolved)

	return rr
}

func TestResolutionConsoleReport(t *testing.T) {
	rg, err := NewReportGenerator(nil)
	if err != nil {
		t.Fatalf("NewReportGenerator: %v", err)
	}

	var buf bytes.Buffer
	if err := rg.GenerateResolutionReport(sampleReport(), &buf); err != nil {
		t.Fatalf("GenerateResolutionReport: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"DEPARTMENT RESOLUTION REPORT",
		"Total records:",
		"4",
		"Operating block rule",
		"Exact normalized match",
		"UNRESOLVED DEPARTMENTS",
		"загадка",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
}

func TestResolutionJSONReport(t *testing.T) {
	cfg := DefaultReportConfig()
	cfg.Format = FormatJSON
	rg, err := NewReportGenerator(cfg)
	if err != nil {
		t.Fatalf("NewReportGenerator: %v", err)
	}

	var buf bytes.Buffer
	if err := rg.GenerateResolutionReport(sampleReport(), &buf); err != nil {
		t.Fatalf("GenerateResolutionReport: %v", err)
	}

	var payload struct {
		Total      int            `json:"total"`
		Resolved   int            `json:"resolved"`
		Rate       float64        `json:"resolution_rate"`
		PerSheet   map[string]int `json:"per_sheet"`
		Unresolved []struct {
			Department string `json:"department"`
			Records    int    `json:"records"`
		} `json:"unresolved"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if payload.Total != 4 || payload.Resolved != 3 {
		t.Errorf("total/resolved = %d/%d, want 4/3", payload.Total, payload.Resolved)
	}
	if payload.Rate != 0.75 {
		t.Errorf("rate = %v, want 0.75", payload.Rate)
	}
	if payload.PerSheet["Воздух"] != 2 {
		t.Errorf("per_sheet = %v", payload.PerSheet)
	}
	if len(payload.Unresolved) != 1 || payload.Unresolved[0].Department != "загадка" {
		t.Errorf("unresolved = %+v", payload.Unresolved)
	}
}

func TestResolutionCSVReport(t *testing.T) {
	cfg := DefaultReportConfig()
	cfg.Format = FormatCSV
	cfg.CSVDelimiter = ';'
	rg, err := NewReportGenerator(cfg)
	if err != nil {
		t.Fatalf("NewReportGenerator: %v", err)
	}

	var buf bytes.Buffer
	if err := rg.GenerateResolutionReport(sampleReport(), &buf); err != nil {
		t.Fatalf("GenerateResolutionReport: %v", err)
	}

	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parsing CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("CSV rows = %d, want header + 1", len(records))
	}
	if records[1][0] != "загадка" || records[1][1] != "1" {
		t.Errorf("CSV row = %v", records[1])
	}
}

func TestMaxUnresolvedCap(t *testing.T) {
	rr := journal.NewResolutionReport()
	for _, dep := range []string{"а", "б", "в"} {
		rr.Observe(&models.JournalRecord{
			Sheet:                "Воздух",
			RawDepartment:        dep,
			NormalizedDepartment: dep,
			Date:                 day(2025, 1, 5),
		}, matcher.MethodUnresolved)
	}

	cfg := DefaultReportConfig()
	cfg.Format = FormatCSV
	cfg.MaxUnresolved = 2
	rg, _ := NewReportGenerator(cfg)

	var buf bytes.Buffer
	if err := rg.GenerateResolutionReport(rr, &buf); err != nil {
		t.Fatalf("GenerateResolutionReport: %v", err)
	}

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 3 { // header + 2 capped rows
		t.Errorf("CSV lines = %d, want 3:\n%s", lines, buf.String())
	}
}

func TestDayReportFormats(t *testing.T) {
	date := day(2025, 1, 5)
	rows := map[string][]*models.JournalRecord{
		"Абиотические": {
			{
				Sheet:                "Абиотические",
				RawDepartment:        "1 АФО",
				NormalizedDepartment: "1 АФО",
				CanonicalDepartment:  "1АФО",
				Building:             "главный",
				Date:                 date,
			},
		},
	}

	rg, _ := NewReportGenerator(nil)
	var buf bytes.Buffer
	if err := rg.GenerateDayReport("1АФО", date, rows, &buf); err != nil {
		t.Fatalf("GenerateDayReport: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "05.01.2025") || !strings.Contains(out, "Абиотические") {
		t.Errorf("console day report:\n%s", out)
	}

	cfg := DefaultReportConfig()
	cfg.Format = FormatCSV
	rg, _ = NewReportGenerator(cfg)
	buf.Reset()
	if err := rg.GenerateDayReport("1АФО", date, rows, &buf); err != nil {
		t.Fatalf("GenerateDayReport CSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing CSV: %v", err)
	}
	if len(records) != 2 || records[1][2] != "1АФО" {
		t.Errorf("CSV day report = %v", records)
	}
}

func TestDayReportEmpty(t *testing.T) {
	rg, _ := NewReportGenerator(nil)
	var buf bytes.Buffer
	if err := rg.GenerateDayReport("1АФО", day(2025, 1, 5), nil, &buf); err != nil {
		t.Fatalf("GenerateDayReport: %v", err)
	}
	if !strings.Contains(buf.String(), "No rows found") {
		t.Errorf("empty day report:\n%s", buf.String())
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := DefaultReportConfig()
	cfg.Format = "xml"
	if _, err := NewReportGenerator(cfg); err == nil {
		t.Error("expected error for unsupported format")
	}

	cfg = DefaultReportConfig()
	cfg.MaxUnresolved = -1
	if _, err := NewReportGenerator(cfg); err == nil {
		t.Error("expected error for negative cap")
	}
}

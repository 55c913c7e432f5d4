// Package reporter renders journal query results for people and programs.
//
// Supported output formats:
//   - Console: human-readable tabular output for terminal display
//   - JSON: structured data for programmatic consumption
//   - CSV: flat rows for spreadsheet applications
//
// Two report types are available: resolution reports summarizing a
// department mapping pass, and day reports listing the journal rows of a
// department on one sampling day.
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"lab-journal-service/internal/journal"
	"lab-journal-service/internal/matcher"
	"lab-journal-service/internal/models"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// ReportConfig holds configuration options for report generation
type ReportConfig struct {
	Format OutputFormat `json:"format"`

	// Detail level options
	IncludeMethodBreakdown bool `json:"include_method_breakdown"`
	IncludeUnresolved      bool `json:"include_unresolved"`

	// MaxUnresolved caps the unresolved list; 0 means unlimited
	MaxUnresolved int `json:"max_unresolved"`

	// CSV options
	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:                 FormatConsole,
		IncludeMethodBreakdown: true,
		IncludeUnresolved:      true,
		MaxUnresolved:          0,
		CSVDelimiter:           ',',
		CSVHeaders:             true,
	}
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	if c.MaxUnresolved < 0 {
		return fmt.Errorf("max unresolved must be non-negative, got %d", c.MaxUnresolved)
	}
	return nil
}

// ReportGenerator renders resolution and day reports in the configured
// format
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a report generator with the specified
// configuration; nil selects the defaults.
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}
	return &ReportGenerator{config: config}, nil
}

// methodOrder fixes the rendering order of resolution methods
var methodOrder = []matcher.Method{
	matcher.MethodStructural,
	matcher.MethodAlias,
	matcher.MethodExactNorm,
	matcher.MethodUnresolved,
	matcher.MethodEmpty,
}

// methodLabels are the human-readable method names for console output
var methodLabels = map[matcher.Method]string{
	matcher.MethodStructural: "Operating block rule",
	matcher.MethodAlias:      "Alias map",
	matcher.MethodExactNorm:  "Exact normalized match",
	matcher.MethodUnresolved: "Unresolved",
	matcher.MethodEmpty:      "Empty department",
}

// GenerateResolutionReport renders a mapping-pass summary to the writer
func (rg *ReportGenerator) GenerateResolutionReport(report *journal.ResolutionReport, writer io.Writer) error {
	if report == nil {
		return fmt.Errorf("resolution report cannot be nil")
	}

	switch rg.config.Format {
	case FormatConsole:
		return rg.resolutionConsole(report, writer)
	case FormatJSON:
		return rg.resolutionJSON(report, writer)
	case FormatCSV:
		return rg.resolutionCSV(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

func (rg *ReportGenerator) unresolvedSlice(report *journal.ResolutionReport) []string {
	deps := report.UnresolvedDepartments()
	if rg.config.MaxUnresolved > 0 && len(deps) > rg.config.MaxUnresolved {
		deps = deps[:rg.config.MaxUnresolved]
	}
	return deps
}

func (rg *ReportGenerator) resolutionConsole(report *journal.ResolutionReport, writer io.Writer) error {
	fmt.Fprintf(writer, "DEPARTMENT RESOLUTION REPORT\n")
	fmt.Fprintf(writer, "Generated: %s\n\n", time.Now().Format(time.RFC3339))

	fmt.Fprintf(writer, "=== SUMMARY ===\n")
	fmt.Fprintf(writer, "%-24s %d\n", "Total records:", report.Total)
	fmt.Fprintf(writer, "%-24s %d\n", "Resolved:", report.Resolved())
	fmt.Fprintf(writer, "%-24s %.1f%%\n\n", "Resolution rate:", report.ResolutionRate()*100)

	if rg.config.IncludeMethodBreakdown {
		fmt.Fprintf(writer, "=== RESOLUTION METHODS ===\n")
		for _, method := range methodOrder {
			if count := report.MethodCounts[method]; count > 0 {
				fmt.Fprintf(writer, "%-24s %d\n", methodLabels[method]+":", count)
			}
		}
		fmt.Fprintf(writer, "\n")
	}

	deps := rg.unresolvedSlice(report)
	if rg.config.IncludeUnresolved && len(deps) > 0 {
		fmt.Fprintf(writer, "=== UNRESOLVED DEPARTMENTS ===\n")
		for _, dep := range deps {
			fmt.Fprintf(writer, "%-40s %d record(s)\n", dep, report.UnresolvedCount(dep))
		}
	}

	return nil
}

// resolutionPayload shapes the JSON form of a resolution report
type resolutionPayload struct {
	Total        int                    `json:"total"`
	Resolved     int                    `json:"resolved"`
	Rate         float64                `json:"resolution_rate"`
	MethodCounts map[matcher.Method]int `json:"method_counts,omitempty"`
	PerSheet     map[string]int         `json:"per_sheet"`
	Unresolved   []unresolvedEntry      `json:"unresolved,omitempty"`
}

type unresolvedEntry struct {
	Department string `json:"department"`
	Records    int    `json:"records"`
}

func (rg *ReportGenerator) resolutionJSON(report *journal.ResolutionReport, writer io.Writer) error {
	payload := resolutionPayload{
		Total:    report.Total,
		Resolved: report.Resolved(),
		Rate:     report.ResolutionRate(),
		PerSheet: report.PerSheet,
	}
	if rg.config.IncludeMethodBreakdown {
		payload.MethodCounts = report.MethodCounts
	}
	if rg.config.IncludeUnresolved {
		for _, dep := range rg.unresolvedSlice(report) {
			payload.Unresolved = append(payload.Unresolved, unresolvedEntry{
				Department: dep,
				Records:    report.UnresolvedCount(dep),
			})
		}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func (rg *ReportGenerator) resolutionCSV(report *journal.ResolutionReport, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	if rg.config.CSVHeaders {
		if err := csvWriter.Write([]string{"Department", "Records"}); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	for _, dep := range rg.unresolvedSlice(report) {
		record := []string{dep, strconv.Itoa(report.UnresolvedCount(dep))}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// GenerateDayReport renders the rows of one department on one sampling day
func (rg *ReportGenerator) GenerateDayReport(department string, date time.Time, rows map[string][]*models.JournalRecord, writer io.Writer) error {
	switch rg.config.Format {
	case FormatConsole:
		return rg.dayConsole(department, date, rows, writer)
	case FormatJSON:
		return rg.dayJSON(department, date, rows, writer)
	case FormatCSV:
		return rg.dayCSV(department, date, rows, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

func (rg *ReportGenerator) dayConsole(department string, date time.Time, rows map[string][]*models.JournalRecord, writer io.Writer) error {
	fmt.Fprintf(writer, "JOURNAL ROWS: %s, %s\n\n", department, date.Format(models.DateLayout))

	if len(rows) == 0 {
		fmt.Fprintf(writer, "No rows found.\n")
		return nil
	}

	for _, sheet := range sheetOrder(rows) {
		fmt.Fprintf(writer, "=== %s (%d row(s)) ===\n", sheet, len(rows[sheet]))
		for _, r := range rows[sheet] {
			fmt.Fprintf(writer, "%-14s %-40s %s\n",
				r.Date.Format(models.DateLayout), r.Department(), r.Building)
		}
		fmt.Fprintf(writer, "\n")
	}
	return nil
}

// dayPayload shapes the JSON form of a day report
type dayPayload struct {
	Department string                             `json:"department"`
	Date       string                             `json:"date"`
	Sheets     map[string][]*models.JournalRecord `json:"sheets"`
}

func (rg *ReportGenerator) dayJSON(department string, date time.Time, rows map[string][]*models.JournalRecord, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dayPayload{
		Department: department,
		Date:       date.Format(models.DateLayout),
		Sheets:     rows,
	})
}

func (rg *ReportGenerator) dayCSV(department string, date time.Time, rows map[string][]*models.JournalRecord, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	if rg.config.CSVHeaders {
		headers := []string{"Sheet", "Date", "Department", "Raw_Department", "Building"}
		if err := csvWriter.Write(headers); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	for _, sheet := range sheetOrder(rows) {
		for _, r := range rows[sheet] {
			record := []string{
				sheet,
				r.Date.Format(models.DateLayout),
				r.Department(),
				r.RawDepartment,
				r.Building,
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func sheetOrder(rows map[string][]*models.JournalRecord) []string {
	out := make([]string, 0, len(rows))
	for sheet := range rows {
		out = append(out, sheet)
	}
	// Deterministic output regardless of map iteration order
	sort.Strings(out)
	return out
}

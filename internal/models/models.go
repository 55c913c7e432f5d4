package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the display format for journal dates
const DateLayout = "02.01.2006"

// JournalRecord represents one row from one sheet of the journal workbook.
//
// RawDepartment keeps the department text exactly as typed in the source
// cell: some historical aliases were keyed on the original text before the
// current cleaning rules existed, so both the raw and the normalized form
// are tried during alias lookup.
type JournalRecord struct {
	Sheet                string    `json:"sheet"`
	RawDepartment        string    `json:"raw_department"`
	NormalizedDepartment string    `json:"normalized_department"`
	Building             string    `json:"building"`
	Date                 time.Time `json:"date"`
	CanonicalDepartment  string    `json:"canonical_department,omitempty"`

	// Cells holds every original column value verbatim, in source order,
	// exposed unmodified downstream.
	Cells []string `json:"cells"`
}

// Validate checks the retention invariant: a record is kept only if it has
// non-empty normalized department text and a parseable date.
func (r *JournalRecord) Validate() error {
	if strings.TrimSpace(r.NormalizedDepartment) == "" {
		return fmt.Errorf("record department cannot be empty")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("record date cannot be zero")
	}
	return nil
}

// Department returns the canonical department when resolution has run,
// falling back to the normalized raw name otherwise.
func (r *JournalRecord) Department() string {
	if r.CanonicalDepartment != "" {
		return r.CanonicalDepartment
	}
	return r.NormalizedDepartment
}

// String returns a string representation of the JournalRecord
func (r *JournalRecord) String() string {
	return fmt.Sprintf("JournalRecord{Sheet: %s, Department: %s, Date: %s}",
		r.Sheet, r.Department(), r.Date.Format(DateLayout))
}

// SheetData holds the retained rows of one workbook sheet together with the
// original header row, preserved in source column order.
type SheetData struct {
	Name    string           `json:"name"`
	Headers []string         `json:"headers"`
	Records []*JournalRecord `json:"records"`
}

// NewSheetData creates an empty SheetData for the named sheet
func NewSheetData(name string, headers []string) *SheetData {
	return &SheetData{
		Name:    name,
		Headers: headers,
		Records: make([]*JournalRecord, 0),
	}
}

// Day truncates a timestamp to midnight UTC. All journal dates are calendar
// days; time-of-day from source cells is discarded at load time.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

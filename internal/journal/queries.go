package journal

import (
	"sort"
	"time"

	"lab-journal-service/internal/models"
	"lab-journal-service/internal/textnorm"
)

// UniqueRawDepartments returns every distinct normalized department text
// across all sheets, sorted alphabetically. This is the review list a
// mapping curator works from.
func (j *Journal) UniqueRawDepartments() []string {
	seen := make(map[string]struct{})
	for _, r := range j.Records() {
		seen[r.NormalizedDepartment] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for dep := range seen {
		out = append(out, dep)
	}
	sort.Strings(out)
	return out
}

// UnknownDepartments returns the distinct normalized department texts of
// records the last mapping pass left unresolved, sorted alphabetically.
// Before any mapping pass every department counts as unknown.
func (j *Journal) UnknownDepartments() []string {
	if j.lastReport == nil {
		return j.UniqueRawDepartments()
	}
	return j.lastReport.UnresolvedDepartments()
}

// matchesDepartment reports whether a record belongs to the department
// named by dep. Canonical names match first; a record that never resolved
// is still reachable through its normalized raw text, so unresolved rows
// stay queryable.
func (j *Journal) matchesDepartment(r *models.JournalRecord, dep string) bool {
	if dep == "" {
		return false
	}
	if r.CanonicalDepartment != "" && r.CanonicalDepartment == dep {
		return true
	}
	return r.CanonicalDepartment == "" && r.NormalizedDepartment == textnorm.Normalize(dep)
}

// DatesForDepartment returns the distinct sampling days of a department
// across all sheets, newest first.
func (j *Journal) DatesForDepartment(dep string) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, r := range j.Records() {
		if j.matchesDepartment(r, dep) {
			seen[r.Date] = struct{}{}
		}
	}
	return sortDatesDesc(seen)
}

// AllDates returns every distinct sampling day across all sheets,
// newest first.
func (j *Journal) AllDates() []time.Time {
	seen := make(map[time.Time]struct{})
	for _, r := range j.Records() {
		seen[r.Date] = struct{}{}
	}
	return sortDatesDesc(seen)
}

// RowsFor returns the records of one sheet for a department on a given
// day, in workbook row order.
func (j *Journal) RowsFor(sheet, dep string, date time.Time) []*models.JournalRecord {
	sd := j.sheets[sheet]
	if sd == nil {
		return nil
	}

	var out []*models.JournalRecord
	for _, r := range sd.Records {
		if j.matchesDepartment(r, dep) && models.SameDay(r.Date, date) {
			out = append(out, r)
		}
	}
	return out
}

// RowsForDate returns every record of one sheet on a given day regardless
// of department, in workbook row order. This drives the "by date across
// all departments" view.
func (j *Journal) RowsForDate(sheet string, date time.Time) []*models.JournalRecord {
	sd := j.sheets[sheet]
	if sd == nil {
		return nil
	}

	var out []*models.JournalRecord
	for _, r := range sd.Records {
		if models.SameDay(r.Date, date) {
			out = append(out, r)
		}
	}
	return out
}

// RowsForAll returns the records for a department on a given day across
// every sheet, keyed by sheet name. Sheets with no matching rows are
// omitted.
func (j *Journal) RowsForAll(dep string, date time.Time) map[string][]*models.JournalRecord {
	out := make(map[string][]*models.JournalRecord)
	for _, name := range j.order {
		if rows := j.RowsFor(name, dep, date); len(rows) > 0 {
			out[name] = rows
		}
	}
	return out
}

func sortDatesDesc(seen map[time.Time]struct{}) []time.Time {
	out := make([]time.Time, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].After(out[k]) })
	return out
}

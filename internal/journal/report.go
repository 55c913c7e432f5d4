package journal

import (
	"sort"

	"lab-journal-service/internal/matcher"
	"lab-journal-service/internal/models"
)

// ResolutionReport summarizes one mapping pass over the loaded records
type ResolutionReport struct {
	// Total is the number of records examined
	Total int `json:"total"`

	// MethodCounts counts records per resolution method
	MethodCounts map[matcher.Method]int `json:"method_counts"`

	// PerSheet counts records per sheet
	PerSheet map[string]int `json:"per_sheet"`

	// unresolved maps each unresolved normalized department text to its
	// record count
	unresolved map[string]int
}

// NewResolutionReport creates an empty report
func NewResolutionReport() *ResolutionReport {
	return &ResolutionReport{
		MethodCounts: make(map[matcher.Method]int),
		PerSheet:     make(map[string]int),
		unresolved:   make(map[string]int),
	}
}

// Observe records one resolution outcome
func (rr *ResolutionReport) Observe(r *models.JournalRecord, method matcher.Method) {
	rr.Total++
	rr.MethodCounts[method]++
	rr.PerSheet[r.Sheet]++
	if method == matcher.MethodUnresolved {
		rr.unresolved[r.NormalizedDepartment]++
	}
}

// Resolved returns the number of records that resolved to a canonical name
func (rr *ResolutionReport) Resolved() int {
	return rr.MethodCounts[matcher.MethodStructural] +
		rr.MethodCounts[matcher.MethodAlias] +
		rr.MethodCounts[matcher.MethodExactNorm]
}

// UnresolvedDepartments returns the distinct unresolved department texts,
// sorted alphabetically
func (rr *ResolutionReport) UnresolvedDepartments() []string {
	out := make([]string, 0, len(rr.unresolved))
	for dep := range rr.unresolved {
		out = append(out, dep)
	}
	sort.Strings(out)
	return out
}

// UnresolvedCount returns the record count behind one unresolved text
func (rr *ResolutionReport) UnresolvedCount(dep string) int {
	return rr.unresolved[dep]
}

// ResolutionRate returns the resolved fraction in the 0..1 range,
// or 1 for an empty report
func (rr *ResolutionReport) ResolutionRate() float64 {
	if rr.Total == 0 {
		return 1
	}
	return float64(rr.Resolved()) / float64(rr.Total)
}

// Package journal provides high-level orchestration over loaded lab
// journal workbooks.
//
// A Journal owns the per-sheet records produced by the loader, applies a
// department mapping through the matcher, and answers the queries the host
// application needs:
//   - Unique raw department texts for mapping review
//   - Unresolved department texts after a mapping pass
//   - Sampling dates per department, newest first
//   - Rows for a department on a given day, per sheet or across all sheets
//
// Example usage:
//
//	j, _ := journal.New(nil)
//	if err := j.Load("journal.xlsx"); err != nil { ... }
//	report := j.ApplyMapping(departments, aliases)
//	dates := j.DatesForDepartment("1АФО")
package journal

import (
	"lab-journal-service/internal/loader"
	"lab-journal-service/internal/matcher"
	"lab-journal-service/internal/models"
	"lab-journal-service/pkg/logger"
)

// Journal owns loaded sheet data and the current resolution state.
// Load replaces all state wholesale; queries are read-only. The type is not
// safe for concurrent mutation.
type Journal struct {
	loader *loader.Loader
	logger logger.Logger

	path   string
	sheets map[string]*models.SheetData
	order  []string

	matcher    *matcher.Matcher
	lastReport *ResolutionReport
}

// New creates a Journal reading workbooks with the given loader
// configuration; nil selects the defaults.
func New(config *loader.Config) (*Journal, error) {
	l, err := loader.NewLoader(config)
	if err != nil {
		return nil, err
	}

	return &Journal{
		loader: l,
		logger: logger.GetGlobalLogger().WithComponent("journal"),
		sheets: make(map[string]*models.SheetData),
	}, nil
}

// Load reads the workbook at path, replacing any previously loaded data.
// A failed load leaves the previous state untouched.
func (j *Journal) Load(path string) error {
	op := logger.NewOperationLogger("journal_load", j.logger).WithField("path", path)

	data, err := j.loader.Load(path)
	if err != nil {
		op.Error(err, "Failed to load journal workbook")
		return err
	}

	j.path = path
	j.sheets = data
	j.order = j.loader.Config().Sheets
	j.matcher = nil
	j.lastReport = nil

	total := 0
	for _, sd := range data {
		total += len(sd.Records)
	}
	op.WithField("sheets", len(data)).WithField("records", total).
		Success("Journal workbook loaded")

	return nil
}

// Path returns the path of the currently loaded workbook
func (j *Journal) Path() string {
	return j.path
}

// SheetNames returns the configured sheet order
func (j *Journal) SheetNames() []string {
	return append([]string(nil), j.order...)
}

// Sheet returns the loaded data for a sheet, or nil when absent
func (j *Journal) Sheet(name string) *models.SheetData {
	return j.sheets[name]
}

// Records returns all records of all sheets in configured sheet order
func (j *Journal) Records() []*models.JournalRecord {
	var out []*models.JournalRecord
	for _, name := range j.order {
		if sd := j.sheets[name]; sd != nil {
			out = append(out, sd.Records...)
		}
	}
	return out
}

// ApplyMapping resolves every record's department against the canonical
// department list and alias map, stamping CanonicalDepartment on each
// record. Records that resolve by no rule keep an empty canonical name.
// The returned report summarizes the pass; it is also retained for
// LastReport.
func (j *Journal) ApplyMapping(departments []string, aliases map[string]string) *ResolutionReport {
	m := matcher.New(departments, aliases)
	j.matcher = m

	report := NewResolutionReport()

	// Raw department texts repeat heavily across rows; resolve each
	// distinct (raw, building) pair once.
	type key struct{ raw, building string }
	type outcome struct {
		canonical string
		method    matcher.Method
	}
	cache := make(map[key]outcome)

	for _, name := range j.order {
		sd := j.sheets[name]
		if sd == nil {
			continue
		}
		for _, r := range sd.Records {
			k := key{r.RawDepartment, r.Building}
			o, ok := cache[k]
			if !ok {
				o.canonical, o.method = m.Resolve(r.RawDepartment, r.Building)
				cache[k] = o
			}
			r.CanonicalDepartment = o.canonical
			report.Observe(r, o.method)
		}
	}

	j.lastReport = report
	j.logger.WithFields(logger.Fields{
		"total":      report.Total,
		"resolved":   report.Resolved(),
		"unresolved": len(report.UnresolvedDepartments()),
	}).Info("Department mapping applied")

	return report
}

// LastReport returns the report of the most recent ApplyMapping pass,
// or nil when no mapping has been applied since the last Load.
func (j *Journal) LastReport() *ResolutionReport {
	return j.lastReport
}

package analysis

import (
	"github.com/shopspring/decimal"
)

// Required column labels of the swab control export
var swabColumns = struct {
	sample, place, note string
	main                []string
}{
	sample: "Номер образца",
	place:  "Место отбора образца",
	note:   "Примечания",
	main:   []string{"БГКП", "SA", "Pseudomonas"},
}

// SwabFinding is one positive observation of a sample. Source is "main"
// when it came from a target-organism column and "note" when it came from
// the free-text notes.
type SwabFinding struct {
	Sample string `json:"sample"`
	Place  string `json:"place"`
	Source string `json:"source"`
	Value  string `json:"value"`
}

// SwabReport is the swab positivity summary
type SwabReport struct {
	Total    int             `json:"total"`
	Positive int             `json:"positive"`
	Negative int             `json:"negative"`
	Percent  decimal.Decimal `json:"percent"`
	Details  []SwabFinding   `json:"details"`
}

// AnalyzeSwabs reads a swab control export and returns the positive-sample
// rate plus the individual findings. A sample is positive when any of its
// rows carries a non-empty target-organism value; the notes column counts
// only for rows whose target-organism columns are all empty.
func AnalyzeSwabs(path string) (*SwabReport, error) {
	t, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	sampleIdx, ok := t.columnIndex(swabColumns.sample)
	if !ok {
		return nil, errMissingColumn(t, swabColumns.sample)
	}
	placeIdx, ok := t.columnIndex(swabColumns.place)
	if !ok {
		return nil, errMissingColumn(t, swabColumns.place)
	}
	noteIdx, ok := t.columnIndex(swabColumns.note)
	if !ok {
		return nil, errMissingColumn(t, swabColumns.note)
	}
	mainIdx := make([]int, len(swabColumns.main))
	for i, name := range swabColumns.main {
		idx, ok := t.columnIndex(name)
		if !ok {
			return nil, errMissingColumn(t, name)
		}
		mainIdx[i] = idx
	}

	type sampleState struct {
		place    string
		findings []SwabFinding
		positive bool
	}
	samples := make(map[string]*sampleState)
	var order []string

	for _, row := range t.rows {
		id := row[sampleIdx]
		if id == "" {
			continue
		}

		state := samples[id]
		if state == nil {
			state = &sampleState{place: row[placeIdx]}
			samples[id] = state
			order = append(order, id)
		}

		foundInMain := false
		for _, idx := range mainIdx {
			v := row[idx]
			if v == "" || v == "-" {
				continue
			}
			state.positive = true
			foundInMain = true
			state.findings = append(state.findings, SwabFinding{
				Sample: id, Place: state.place, Source: "main", Value: v,
			})
		}

		if !foundInMain {
			if note := row[noteIdx]; note != "" && note != "-" {
				state.positive = true
				state.findings = append(state.findings, SwabFinding{
					Sample: id, Place: state.place, Source: "note", Value: note,
				})
			}
		}
	}

	report := &SwabReport{Total: len(samples)}
	for _, id := range order {
		state := samples[id]
		if !state.positive {
			continue
		}
		report.Positive++
		report.Details = append(report.Details, state.findings...)
	}
	report.Negative = report.Total - report.Positive
	report.Percent = percent(report.Positive, report.Total)

	return report, nil
}

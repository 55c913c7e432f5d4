package analysis

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Export column labels of the detected-microbes query
const (
	microbeColumn = "Обнар. микроорг."
	countColumn   = "COUNT(*)"
)

// MicrobeCount is one microbe's share of all detections
type MicrobeCount struct {
	Microbe string          `json:"microbe"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
	Gram    Gram            `json:"gram"`
}

// GramCount aggregates detections per Gram class
type GramCount struct {
	Gram    Gram            `json:"gram"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// MicrobeReport is the detected-microbes summary
type MicrobeReport struct {
	Total        int            `json:"total"`
	Microbes     []MicrobeCount `json:"microbes"`
	GramSummary  []GramCount    `json:"gram_summary"`
	Unclassified []MicrobeCount `json:"unclassified"`
}

// AnalyzeMicrobes reads a detected-microbes export and returns frequency
// and Gram-class statistics, microbes ordered by count descending.
func AnalyzeMicrobes(path string) (*MicrobeReport, error) {
	t, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	microbeIdx, ok := t.columnIndex(microbeColumn)
	if !ok {
		return nil, errMissingColumn(t, microbeColumn)
	}
	countIdx, ok := t.columnIndex(countColumn)
	if !ok {
		return nil, errMissingColumn(t, countColumn)
	}

	type entry struct {
		microbe string
		count   int
	}
	var entries []entry
	total := 0
	for _, row := range t.rows {
		count, ok := parseCount(row[countIdx])
		if !ok || row[microbeIdx] == "" {
			continue
		}
		entries = append(entries, entry{microbe: row[microbeIdx], count: count})
		total += count
	}
	sort.SliceStable(entries, func(i, k int) bool { return entries[i].count > entries[k].count })

	report := &MicrobeReport{Total: total}
	gramCounts := make(map[Gram]int)
	var gramOrder []Gram

	for _, e := range entries {
		gram := ClassifyGram(e.microbe)
		mc := MicrobeCount{
			Microbe: e.microbe,
			Count:   e.count,
			Percent: percent(e.count, total),
			Gram:    gram,
		}
		report.Microbes = append(report.Microbes, mc)

		if _, seen := gramCounts[gram]; !seen {
			gramOrder = append(gramOrder, gram)
		}
		gramCounts[gram] += e.count

		if gram == GramUnclassified {
			report.Unclassified = append(report.Unclassified, mc)
		}
	}

	for _, gram := range gramOrder {
		report.GramSummary = append(report.GramSummary, GramCount{
			Gram:    gram,
			Count:   gramCounts[gram],
			Percent: percent(gramCounts[gram], total),
		})
	}

	return report, nil
}

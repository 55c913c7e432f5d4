package analysis

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"lab-journal-service/pkg/errors"
)

// Genus keywords that identify the microbe column of a resistance export
var resistanceGenera = []string{
	"staphylococcus", "klebsiella", "enterococcus",
	"pseudomonas", "bacillus", "streptococcus",
}

// sentinelAntibiotic marks the antibiotic column: every resistance export
// from the LIMS contains at least one linezolid row.
const sentinelAntibiotic = "линезолид"

type bucket struct {
	total  int
	rCount int
}

// ResistanceLine is the resistance rate of one microbe or one antibiotic
type ResistanceLine struct {
	Name     string          `json:"name"`
	RCount   int             `json:"r_count"`
	Total    int             `json:"total"`
	RPercent decimal.Decimal `json:"r_percent"`
}

// ResistanceReport summarizes R/S/I outcomes per microbe and per antibiotic
type ResistanceReport struct {
	Microbes    []ResistanceLine `json:"microbes"`
	Antibiotics []ResistanceLine `json:"antibiotics"`
}

// AnalyzeResistance reads a resistance export and returns the share of
// resistant (R) outcomes per microbe and per antibiotic, highest first.
//
// The export carries no stable header labels, so the columns are located
// by content: the antibiotic column by the linezolid sentinel (third
// column as fallback), the result column by R/S/I values, the microbe
// column by genus keywords, and the count column as the first fully
// numeric one.
func AnalyzeResistance(path string) (*ResistanceReport, error) {
	t, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	antibioticIdx := findAntibioticColumn(t)
	if antibioticIdx < 0 {
		return nil, errMissingColumn(t, "антибиотик")
	}
	resultIdx := findResultColumn(t)
	if resultIdx < 0 {
		return nil, errors.ValidationError(errors.CodeMissingField, "result_column", nil, nil).
			WithSuggestion("Expected a column containing R/S/I values")
	}
	microbeIdx := findMicrobeColumn(t)
	if microbeIdx < 0 {
		return nil, errors.ValidationError(errors.CodeMissingField, "microbe_column", nil, nil).
			WithSuggestion("Expected a column containing microbe genus names")
	}
	countIdx := findCountColumn(t)
	if countIdx < 0 {
		return nil, errors.ValidationError(errors.CodeMissingField, "count_column", nil, nil).
			WithSuggestion("Expected a numeric count column")
	}

	byMicrobe := make(map[string]*bucket)
	byAntibiotic := make(map[string]*bucket)

	tally := func(m map[string]*bucket, key string, count int, resistant bool) {
		b := m[key]
		if b == nil {
			b = &bucket{}
			m[key] = b
		}
		b.total += count
		if resistant {
			b.rCount += count
		}
	}

	for _, row := range t.rows {
		count, ok := parseCount(row[countIdx])
		if !ok {
			continue
		}
		resistant := strings.ToUpper(strings.TrimSpace(row[resultIdx])) == "R"
		tally(byMicrobe, row[microbeIdx], count, resistant)
		tally(byAntibiotic, row[antibioticIdx], count, resistant)
	}

	return &ResistanceReport{
		Microbes:    resistanceLines(byMicrobe),
		Antibiotics: resistanceLines(byAntibiotic),
	}, nil
}

func resistanceLines(buckets map[string]*bucket) []ResistanceLine {
	out := make([]ResistanceLine, 0, len(buckets))
	for name, b := range buckets {
		out = append(out, ResistanceLine{
			Name:     name,
			RCount:   b.rCount,
			Total:    b.total,
			RPercent: percent(b.rCount, b.total),
		})
	}
	sort.SliceStable(out, func(i, k int) bool {
		if c := out[i].RPercent.Cmp(out[k].RPercent); c != 0 {
			return c > 0
		}
		return out[i].Name < out[k].Name
	})
	return out
}

func findAntibioticColumn(t *table) int {
	for i := range t.headers {
		for _, v := range t.column(i) {
			if strings.Contains(strings.ToLower(v), sentinelAntibiotic) {
				return i
			}
		}
	}
	if len(t.headers) > 2 {
		return 2
	}
	return -1
}

func findResultColumn(t *table) int {
	for i := range t.headers {
		for _, v := range t.column(i) {
			switch strings.ToUpper(strings.TrimSpace(v)) {
			case "R", "S", "I":
				return i
			}
		}
	}
	return -1
}

func findMicrobeColumn(t *table) int {
	for i := range t.headers {
		for _, v := range t.column(i) {
			lower := strings.ToLower(v)
			for _, genus := range resistanceGenera {
				if strings.Contains(lower, genus) {
					return i
				}
			}
		}
	}
	return -1
}

// findCountColumn returns the first column whose non-empty values all
// parse as numbers, with at least one value present.
func findCountColumn(t *table) int {
	for i := range t.headers {
		numeric := 0
		ok := true
		for _, v := range t.column(i) {
			if strings.TrimSpace(v) == "" {
				continue
			}
			if _, isNum := parseCount(v); !isNum {
				ok = false
				break
			}
			numeric++
		}
		if ok && numeric > 0 {
			return i
		}
	}
	return -1
}

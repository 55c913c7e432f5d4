// Package analysis implements standalone statistics over microbiology
// export workbooks: detected-microbe frequencies with Gram classification,
// antibiotic resistance rates, and swab positivity.
//
// These exports come from a LIMS query, not from the journal workbook, so
// the package reads the first worksheet of whatever file it is given and
// locates columns heuristically where the export format varies.
package analysis

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"lab-journal-service/internal/textnorm"
	"lab-journal-service/pkg/errors"
)

// table is a first-worksheet snapshot: normalized headers plus data rows
// padded to header width.
type table struct {
	sheet   string
	headers []string
	rows    [][]string
}

func readFirstSheet(path string) (*table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WorkbookError(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.WorkbookError(path, nil)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.MissingSheetError(sheet, err)
	}
	if len(rows) == 0 {
		return &table{sheet: sheet}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = textnorm.Normalize(h)
	}

	t := &table{sheet: sheet, headers: headers}
	for _, row := range rows[1:] {
		padded := make([]string, len(headers))
		for i := range padded {
			if i < len(row) {
				padded[i] = textnorm.Normalize(row[i])
			}
		}
		t.rows = append(t.rows, padded)
	}
	return t, nil
}

func errMissingColumn(t *table, column string) error {
	return errors.MissingColumnError(t.sheet, column)
}

// columnIndex finds a header by exact normalized match
func (t *table) columnIndex(name string) (int, bool) {
	for i, h := range t.headers {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// column returns all data values of one column
func (t *table) column(idx int) []string {
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out
}

// parseCount reads a cell as a non-negative integer count. Exports
// sometimes format counts as floats ("12.0").
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int(f), true
}

// percent returns count/total as a percentage rounded to one decimal
// place, or zero when total is zero.
func percent(count, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(count) * 100).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
}

package loader

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"lab-journal-service/internal/models"
	"lab-journal-service/internal/textnorm"
)

// isoPrefixRe recognizes ISO-like date text, which must be parsed
// year-first even though the source locale writes dates day-first.
var isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}($|[T\s])`)

// yearFirstLayouts parse ISO-like text
var yearFirstLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// dayFirstLayouts resolve the ambiguous day/month ordering the way the
// source locale writes it: day first.
var dayFirstLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
}

// Excel serial date bounds: 60 skips the 1900 leap-year bug region,
// the upper bound is 9999-12-31.
const (
	serialMin = 60
	serialMax = 2958465
)

// ParseDate converts a cell value to a calendar day (midnight UTC).
//
// Native date cells arrive from the workbook either as Excel serial numbers
// or as formatted text depending on cell style; both are accepted. Text
// dates may carry a trailing year-suffix abbreviation ("г."/"г"). The
// second return value is false when the value does not parse — that row is
// dropped by the caller, not treated as an error.
func ParseDate(value string) (time.Time, bool) {
	s := textnorm.Normalize(value)
	if s == "" {
		return time.Time{}, false
	}

	s = strings.TrimSuffix(s, "г.")
	s = strings.TrimSuffix(s, "г")
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < serialMin || serial > serialMax {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return models.Day(t), true
	}

	layouts := dayFirstLayouts
	if isoPrefixRe.MatchString(s) {
		layouts = yearFirstLayouts
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Day(t), true
		}
	}

	return time.Time{}, false
}

package matcher

import (
	"fmt"
	"strings"
)

// operBlockKeyword marks the recurring "operating block by floor/building"
// naming pattern in raw department text.
const operBlockKeyword = "оперблок"

// Floors recognized by the structural rule. Floor numbers are matched as a
// standalone digit only; multi-digit floors are intentionally unsupported
// (the source naming convention never produced them).
var operBlockFloors = map[rune]int{
	'2': 2,
	'3': 3,
	'4': 4,
	'5': 5,
	'6': 6,
	'8': 8,
}

// CanonOperBlock synthesizes the canonical operating-block department name
// from the cleaned department text and building hint, or returns "" when the
// structural rule does not apply. The rule takes precedence over alias
// lookups.
func CanonOperBlock(depClean, buildingClean string) string {
	depLower := strings.ToLower(depClean)
	if !strings.Contains(depLower, operBlockKeyword) {
		return ""
	}

	floor := standaloneFloor(depLower)
	if floor == 0 {
		return ""
	}

	buildingLower := strings.ToLower(buildingClean)

	if floor == 6 && strings.Contains(buildingLower, "фпц") {
		return "ОПЕРБЛОК 6 ЭТАЖ ФПЦ"
	}
	if floor == 4 && strings.Contains(buildingLower, "кдц") {
		return "ОПЕРБЛОК 4 ЭТАЖ КДЦ"
	}
	if floor == 3 && strings.Contains(buildingLower, "надстро") {
		return "ОПЕРБЛОК 3 ЭТАЖ НАДСТРОЙ"
	}

	if strings.Contains(buildingLower, "главн") {
		switch floor {
		case 2, 5, 6, 8:
			return fmt.Sprintf("ОПЕРБЛОК %d ЭТАЖ", floor)
		}
	}

	return ""
}

// standaloneFloor returns the leftmost recognized floor digit that is not
// adjacent to another digit, or 0 when none is present.
func standaloneFloor(s string) int {
	runes := []rune(s)
	for i, r := range runes {
		floor, ok := operBlockFloors[r]
		if !ok {
			continue
		}
		if i > 0 && isDigit(runes[i-1]) {
			continue
		}
		if i+1 < len(runes) && isDigit(runes[i+1]) {
			continue
		}
		return floor
	}
	return 0
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

package loader

import (
	"strings"

	"lab-journal-service/internal/textnorm"
)

// columnStrategy is one way of matching a wanted logical column label
// against a header cell. Strategies run in order; the first hit wins.
type columnStrategy func(header, want string) bool

// Ordered matcher strategies: exact normalized match first, then
// case-insensitive normalized substring. An explicit list instead of an
// implicit fallthrough keeps "not found" a typed outcome rather than a nil
// threaded through later logic.
var columnStrategies = []columnStrategy{
	func(header, want string) bool { return header == want },
	func(header, want string) bool { return strings.Contains(header, want) },
}

// findColumn locates the wanted logical column among the (already
// normalized) headers, returning its index and whether it was found.
func findColumn(headers []string, want string) (int, bool) {
	wantNorm := normalizeHeader(want)
	if wantNorm == "" {
		return -1, false
	}

	for _, matches := range columnStrategies {
		for i, header := range headers {
			if matches(normalizeHeader(header), wantNorm) {
				return i, true
			}
		}
	}

	return -1, false
}

// normalizeHeader folds a header cell for comparison
func normalizeHeader(s string) string {
	return strings.ToLower(textnorm.Normalize(s))
}

// Package matcher resolves raw department strings from the journal workbook
// to canonical department names.
//
// Resolution is strictly deterministic: a structural naming rule, then exact
// alias lookups, then exact equality after strict normalization. There is no
// scoring, no edit distance and no similarity threshold — ambiguous input
// must surface as unresolved for deliberate human mapping rather than risk
// silently mis-routing lab results to the wrong department.
package matcher

import (
	"strings"

	"lab-journal-service/internal/textnorm"
)

// Method identifies which resolution step produced a canonical name
type Method string

const (
	// MethodStructural means the operating-block naming rule matched
	MethodStructural Method = "structural"
	// MethodAlias means an exact alias-map entry matched
	MethodAlias Method = "alias_exact"
	// MethodExactNorm means strict-normalized equality against the canonical list matched
	MethodExactNorm Method = "exact_norm"
	// MethodUnresolved means no rule matched; the value needs human mapping
	MethodUnresolved Method = "unknown"
	// MethodEmpty means the input was empty after normalization
	MethodEmpty Method = "empty"
)

// Matcher resolves raw department text against a canonical department list
// and an alias map. It is a pure lookup structure: Resolve has no side
// effects, and collecting unresolved values for human mapping is the
// caller's responsibility.
type Matcher struct {
	departments []string
	strictIndex map[string]string
	aliases     map[string]string
}

// New creates a Matcher over the externally supplied canonical department
// list (read-only, order preserved) and the current alias map. A nil alias
// map is treated as empty.
func New(departments []string, aliases map[string]string) *Matcher {
	if aliases == nil {
		aliases = map[string]string{}
	}

	// First canonical name wins for a given strict token; the list order is
	// configuration-defined.
	strictIndex := make(map[string]string, len(departments))
	for _, dep := range departments {
		token := textnorm.NormalizeStrict(dep)
		if token == "" {
			continue
		}
		if _, exists := strictIndex[token]; !exists {
			strictIndex[token] = dep
		}
	}

	return &Matcher{
		departments: departments,
		strictIndex: strictIndex,
		aliases:     aliases,
	}
}

// Departments returns the canonical department list the matcher was built with
func (m *Matcher) Departments() []string {
	return m.departments
}

// Resolve maps a raw department value (as typed in the source cell) plus its
// building hint to a canonical department name.
//
// Resolution order, first hit wins:
//  1. structural operating-block rule (beats aliases: it encodes a naming
//     convention, not a one-off correction)
//  2. alias lookup by the cleaned raw string, then by the trimmed original
//     (aliases recorded before the current cleaning rules may use either key)
//  3. exact equality after strict normalization against the canonical list
//
// Anything else is unresolved.
func (m *Matcher) Resolve(raw, building string) (string, Method) {
	clean := textnorm.Normalize(raw)
	if clean == "" {
		return "", MethodEmpty
	}

	if canonical := CanonOperBlock(clean, textnorm.Normalize(building)); canonical != "" {
		return canonical, MethodStructural
	}

	if canonical := m.lookupAlias(clean); canonical != "" {
		return canonical, MethodAlias
	}
	if trimmed := strings.TrimSpace(raw); trimmed != clean {
		if canonical := m.lookupAlias(trimmed); canonical != "" {
			return canonical, MethodAlias
		}
	}

	if canonical, ok := m.strictIndex[textnorm.NormalizeStrict(clean)]; ok {
		return canonical, MethodExactNorm
	}

	return "", MethodUnresolved
}

// IsResolved reports whether the raw value resolves without human input
func (m *Matcher) IsResolved(raw, building string) bool {
	_, method := m.Resolve(raw, building)
	return method == MethodStructural || method == MethodAlias || method == MethodExactNorm
}

func (m *Matcher) lookupAlias(key string) string {
	if v, ok := m.aliases[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return ""
}

// Package strings normalises the free-form status and key strings that reach
// the validation engine from configuration and from legacy payloads.
package strings

import (
	"strings"
)

// Fold trims surrounding whitespace and lower-cases s.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DedupeFold folds every element, drops empties and duplicates, and keeps
// first-seen order.
//
// Example:
//
//	DedupeFold([]string{"  Open ", "ACTIVE", "open", ""})
//	// Returns: []string{"open", "active"}
func DedupeFold(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		folded := Fold(v)
		if folded == "" {
			continue
		}
		if _, ok := seen[folded]; !ok {
			seen[folded] = struct{}{}
			result = append(result, folded)
		}
	}

	return result
}

// Set is an allow-list matched after folding. The zero value matches nothing.
type Set struct {
	members map[string]struct{}
	ordered []string
}

// NewSet builds a Set from values, folding and deduplicating them.
func NewSet(values ...string) Set {
	ordered := DedupeFold(values)
	members := make(map[string]struct{}, len(ordered))
	for _, v := range ordered {
		members[v] = struct{}{}
	}
	return Set{members: members, ordered: ordered}
}

// Has reports whether s, once folded, is a member.
func (s Set) Has(v string) bool {
	_, ok := s.members[Fold(v)]
	return ok
}

// Values returns the members in insertion order.
func (s Set) Values() []string {
	return append([]string(nil), s.ordered...)
}

// Len returns the number of distinct members.
func (s Set) Len() int {
	return len(s.ordered)
}

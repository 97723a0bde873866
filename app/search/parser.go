package search

import "strings"

// ParseQuery splits a raw query into normalized terms: whitespace split,
// trimmed, fragments shorter than 2 characters dropped, duplicates removed
// case-sensitively with first-occurrence order preserved. An empty or
// blank input yields an empty slice.
func ParseQuery(raw string) []string {
	terms := []string{}
	seen := make(map[string]struct{})

	for _, fragment := range strings.Fields(raw) {
		term := strings.TrimSpace(fragment)
		if len(term) < 2 {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	return terms
}

package search

import (
	"regexp"
	"strings"
)

// Score tiers. The values matter only relative to each other.
const (
	scoreExact     = 100
	scoreWholeWord = 50
	scoreSubstring = 25
)

// RelevanceScore ranks how well a text blob matches the parsed terms.
// Per term, case-insensitive: the whole blob equal to the term scores 100,
// the term present as a whole word scores 50, any other substring presence
// scores 25. Term scores are summed. An empty blob or empty term set
// scores 0.
func RelevanceScore(blob string, terms []string) float64 {
	if blob == "" || len(terms) == 0 {
		return 0
	}

	lowerBlob := strings.ToLower(blob)

	var score float64
	for _, term := range terms {
		lowerTerm := strings.ToLower(term)

		switch {
		case lowerBlob == lowerTerm:
			score += scoreExact
		case matchesWholeWord(lowerBlob, lowerTerm):
			score += scoreWholeWord
		case strings.Contains(lowerBlob, lowerTerm):
			score += scoreSubstring
		}
	}

	return score
}

func matchesWholeWord(blob, term string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(blob)
}

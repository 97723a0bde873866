package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceScoreExactMatch(t *testing.T) {
	assert.Equal(t, float64(100), RelevanceScore("meeting", []string{"meeting"}))
	assert.Equal(t, float64(100), RelevanceScore("Meeting", []string{"meeting"}))
}

func TestRelevanceScoreWholeWordMatch(t *testing.T) {
	assert.Equal(t, float64(50), RelevanceScore("Team Meeting", []string{"meeting"}))
	assert.Equal(t, float64(50), RelevanceScore("the meeting room", []string{"meeting"}))
}

func TestRelevanceScoreSubstringMatch(t *testing.T) {
	assert.Equal(t, float64(25), RelevanceScore("teammeetingroom", []string{"meeting"}))
}

func TestRelevanceScoreNoMatch(t *testing.T) {
	assert.Equal(t, float64(0), RelevanceScore("quarterly review", []string{"meeting"}))
}

func TestRelevanceScoreSumsAcrossTerms(t *testing.T) {
	// "team" as a whole word plus "meeting" as a whole word.
	assert.Equal(t, float64(100), RelevanceScore("Team Meeting Notes", []string{"team", "meeting"}))
	// One whole-word hit, one miss.
	assert.Equal(t, float64(50), RelevanceScore("Team Notes", []string{"team", "meeting"}))
}

func TestRelevanceScoreEmptyCases(t *testing.T) {
	assert.Equal(t, float64(0), RelevanceScore("", []string{"meeting"}))
	assert.Equal(t, float64(0), RelevanceScore("Team Meeting", nil))
	assert.Equal(t, float64(0), RelevanceScore("Team Meeting", []string{}))
}

func TestRelevanceScoreRegexMetacharactersInTerm(t *testing.T) {
	// Terms are matched literally, not as patterns. A term ending in a
	// non-word character has no trailing word boundary, so "c++" lands in
	// the substring tier.
	assert.Equal(t, float64(0), RelevanceScore("team meeting", []string{"t.*g"}))
	assert.Equal(t, float64(25), RelevanceScore("is c++ fun", []string{"c++"}))
}

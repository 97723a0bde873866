package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryEmptyInput(t *testing.T) {
	assert.Empty(t, ParseQuery(""))
	assert.Empty(t, ParseQuery("   \t\n  "))
}

func TestParseQueryDropsShortFragments(t *testing.T) {
	assert.Equal(t, []string{"ab", "cd"}, ParseQuery("ab a cd x"))
	assert.Empty(t, ParseQuery("a b c"))
}

func TestParseQueryDeduplicatesPreservingOrder(t *testing.T) {
	assert.Equal(t, []string{"ab", "cd"}, ParseQuery("ab a cd ab"))
	assert.Equal(t, []string{"team", "standup", "notes"}, ParseQuery("team standup team notes standup"))
}

func TestParseQueryDeduplicationIsCaseSensitive(t *testing.T) {
	assert.Equal(t, []string{"Team", "team"}, ParseQuery("Team team Team"))
}

func TestParseQuerySplitsOnAnyWhitespace(t *testing.T) {
	assert.Equal(t, []string{"weekly", "planning"}, ParseQuery("  weekly\t\nplanning "))
}

package search

import (
	"context"
	"testing"
	"time"

	"gatherly/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func suggestionTexts(suggestions []*Suggestion) []string {
	texts := make([]string, len(suggestions))
	for i, s := range suggestions {
		texts[i] = s.Text
	}
	return texts
}

func TestGetSearchSuggestionsCoversAllCategories(t *testing.T) {
	svc, db := newTestService(t)
	planner := seedUser(t, db, "Plan", "Ner", "planner@example.com")

	meeting := seedMeeting(t, db, planner.Id, "Project Planning", "quarterly goals")
	require.NoError(t, db.Model(&models.Meeting{}).Where("id = ?", meeting.Id).
		Update("location", "Planning Room").Error)
	seedPost(t, db, planner.Id, "Planning notes", "what we agreed")

	suggestions, err := svc.GetSearchSuggestions(context.Background(), "plan", 8)
	require.NoError(t, err)

	texts := suggestionTexts(suggestions)
	assert.Contains(t, texts, "Project Planning")
	assert.Contains(t, texts, "Planning notes")
	assert.Contains(t, texts, "Plan Ner")
	assert.Contains(t, texts, "Planning Room")
}

func TestGetSearchSuggestionsCapsPerCategory(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")

	titles := []string{"Planning A", "Planning B", "Planning C", "Planning D", "Planning E"}
	for _, title := range titles {
		seedMeeting(t, db, author.Id, title, "")
	}

	suggestions, err := svc.GetSearchSuggestions(context.Background(), "plan", 8)
	require.NoError(t, err)

	// max/4 per category.
	assert.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.Equal(t, "Meeting", s.Type)
	}
}

func TestGetSearchSuggestionsSkipsInactiveRows(t *testing.T) {
	svc, db := newTestService(t)
	author := seedUser(t, db, "Ada", "Lovelace", "ada@example.com")
	cancelled := seedMeeting(t, db, author.Id, "Planning Session", "")
	deactivate(t, db, &models.Meeting{}, cancelled.Id)

	suggestions, err := svc.GetSearchSuggestions(context.Background(), "planning session", 8)
	require.NoError(t, err)
	assert.NotContains(t, suggestionTexts(suggestions), "Planning Session")
}

func TestGetSearchSuggestionsEmptyInput(t *testing.T) {
	svc, _ := newTestService(t)

	suggestions, err := svc.GetSearchSuggestions(context.Background(), "   ", 8)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	suggestions, err = svc.GetSearchSuggestions(context.Background(), "plan", 0)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func seedQuery(t *testing.T, db *gorm.DB, query string, age time.Duration) {
	t.Helper()
	row := &models.SearchQuery{
		Query:      query,
		SearchType: string(SearchTypeGlobal),
		CreatedAt:  time.Now().Add(-age),
	}
	require.NoError(t, db.Create(row).Error)
}

func TestGetPopularSearchTermsRanksByFrequency(t *testing.T) {
	svc, db := newTestService(t)
	seedQuery(t, db, "team standup", time.Hour)
	seedQuery(t, db, "team roadmap", time.Hour)
	seedQuery(t, db, "the of", time.Hour) // stop words only

	terms, err := svc.GetPopularSearchTerms(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"team", "roadmap", "standup"}, terms)
}

func TestGetPopularSearchTermsPadsWithFallbacks(t *testing.T) {
	svc, db := newTestService(t)
	seedQuery(t, db, "team standup", time.Hour)
	seedQuery(t, db, "team roadmap", time.Hour)

	terms, err := svc.GetPopularSearchTerms(context.Background(), 5)
	require.NoError(t, err)

	// Recorded tokens first, then fallbacks without repeating present terms.
	assert.Equal(t, []string{"team", "roadmap", "standup", "meeting", "discussion"}, terms)
}

func TestGetPopularSearchTermsFallbackOnlyWhenEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	terms, err := svc.GetPopularSearchTerms(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"meeting", "discussion", "project"}, terms)
}

func TestGetPopularSearchTermsIgnoresOldQueries(t *testing.T) {
	svc, db := newTestService(t)
	seedQuery(t, db, "archived topic", 40*24*time.Hour)

	terms, err := svc.GetPopularSearchTerms(context.Background(), 10)
	require.NoError(t, err)
	assert.NotContains(t, terms, "archived")
	assert.NotContains(t, terms, "topic")
}

func TestGetPopularSearchTermsZeroCount(t *testing.T) {
	svc, _ := newTestService(t)

	terms, err := svc.GetPopularSearchTerms(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, terms)
}

package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gatherly/app/models"
	"gatherly/core/app/users"
)

// popularTermsWindow is the trailing period the popularity aggregator
// reads from the audit trail.
const popularTermsWindow = 30 * 24 * time.Hour

// stopWords are tokens never reported as popular terms.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "can": {}, "do": {}, "for": {},
	"from": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"his": {}, "how": {}, "if": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "my": {}, "no": {}, "not": {}, "of": {}, "on": {},
	"or": {}, "our": {}, "she": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "they": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"who": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

// fallbackTerms pad the popular-terms list when the audit trail is sparse.
var fallbackTerms = []string{
	"meeting", "discussion", "project", "team", "planning",
	"review", "standup", "workshop", "agenda", "notes",
}

// GetSearchSuggestions returns up to max autocomplete candidates whose
// text contains the partial query: meeting titles, post titles, user full
// names and distinct meeting locations, each category capped at max/4.
func (s *SearchService) GetSearchSuggestions(ctx context.Context, partial string, max int) ([]*Suggestion, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" || max < 1 {
		return []*Suggestion{}, nil
	}

	perCategory := max / 4
	if perCategory < 1 {
		perCategory = 1
	}
	pattern := "%" + strings.ToLower(partial) + "%"

	suggestions := []*Suggestion{}

	var meetingTitles []string
	err := s.DB.WithContext(ctx).Model(&models.Meeting{}).
		Where("is_active = ? AND LOWER(title) LIKE ?", true, pattern).
		Distinct("title").Limit(perCategory).
		Pluck("title", &meetingTitles).Error
	if err != nil {
		return nil, fmt.Errorf("suggestion lookup failed: %w", err)
	}
	for _, title := range meetingTitles {
		suggestions = append(suggestions, &Suggestion{Text: title, Type: "Meeting", Count: 1})
	}

	var postTitles []string
	err = s.DB.WithContext(ctx).Model(&models.Post{}).
		Where("is_active = ? AND LOWER(title) LIKE ?", true, pattern).
		Distinct("title").Limit(perCategory).
		Pluck("title", &postTitles).Error
	if err != nil {
		return nil, fmt.Errorf("suggestion lookup failed: %w", err)
	}
	for _, title := range postTitles {
		suggestions = append(suggestions, &Suggestion{Text: title, Type: "Post", Count: 1})
	}

	// Full names only exist assembled, so candidates are fetched on the
	// name columns and the combined name is checked here.
	var userRows []*users.User
	err = s.DB.WithContext(ctx).Model(&users.User{}).
		Select("id", "first_name", "last_name").
		Where("is_active = ?", true).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern).
		Find(&userRows).Error
	if err != nil {
		return nil, fmt.Errorf("suggestion lookup failed: %w", err)
	}
	lowerPartial := strings.ToLower(partial)
	added := 0
	for _, row := range userRows {
		if added >= perCategory {
			break
		}
		fullName := row.FullName()
		if strings.Contains(strings.ToLower(fullName), lowerPartial) {
			suggestions = append(suggestions, &Suggestion{Text: fullName, Type: "User", Count: 1})
			added++
		}
	}

	var locations []string
	err = s.DB.WithContext(ctx).Model(&models.Meeting{}).
		Where("location <> '' AND LOWER(location) LIKE ?", pattern).
		Distinct("location").Limit(perCategory).
		Pluck("location", &locations).Error
	if err != nil {
		return nil, fmt.Errorf("suggestion lookup failed: %w", err)
	}
	for _, location := range locations {
		suggestions = append(suggestions, &Suggestion{Text: location, Type: "Location", Count: 1})
	}

	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}

	return suggestions, nil
}

// GetPopularSearchTerms aggregates the trailing 30 days of recorded
// queries into a frequency-ranked token list, padded with fallback terms
// when the audit trail does not yield enough.
func (s *SearchService) GetPopularSearchTerms(ctx context.Context, count int) ([]string, error) {
	if count < 1 {
		return []string{}, nil
	}

	since := time.Now().Add(-popularTermsWindow)

	var queries []string
	err := s.DB.WithContext(ctx).Model(&models.SearchQuery{}).
		Where("created_at >= ?", since).
		Pluck("query", &queries).Error
	if err != nil {
		return nil, fmt.Errorf("popular terms lookup failed: %w", err)
	}

	frequency := make(map[string]int)
	for _, query := range queries {
		if len(strings.TrimSpace(query)) < 2 {
			continue
		}
		for _, token := range strings.Fields(query) {
			token = strings.ToLower(token)
			if len(token) < 2 {
				continue
			}
			if _, stop := stopWords[token]; stop {
				continue
			}
			frequency[token]++
		}
	}

	terms := make([]string, 0, len(frequency))
	for term := range frequency {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if frequency[terms[i]] != frequency[terms[j]] {
			return frequency[terms[i]] > frequency[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > count {
		terms = terms[:count]
	}

	present := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		present[term] = struct{}{}
	}
	for _, fallback := range fallbackTerms {
		if len(terms) >= count {
			break
		}
		if _, ok := present[fallback]; ok {
			continue
		}
		terms = append(terms, fallback)
		present[fallback] = struct{}{}
	}

	return terms, nil
}

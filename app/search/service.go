package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gatherly/app/models"
	"gatherly/core/app/users"
	"gatherly/core/logger"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type SearchService struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewSearchService(db *gorm.DB, logger logger.Logger) *SearchService {
	return &SearchService{
		DB:     db,
		Logger: logger,
	}
}

// normalizePaging clamps caller-supplied paging values. Non-positive pages
// become 1, non-positive sizes fall back to the default, oversized pages
// are capped.
func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func normalizeFilters(filters *SearchFilters) *SearchFilters {
	if filters == nil {
		return DefaultFilters()
	}
	return filters
}

func paginate[T any](items []T, page, pageSize int) []T {
	skip := (page - 1) * pageSize
	if skip >= len(items) {
		return []T{}
	}
	end := skip + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// GlobalSearch runs the query against the selected entity types (all four
// when the filter is empty), merges the full result sets, sorts them,
// and returns one page together with pre-pagination per-type counts.
func (s *SearchService) GlobalSearch(ctx context.Context, query string, filters *SearchFilters, page, pageSize int) (*SearchResultsPage, error) {
	start := time.Now()
	page, pageSize = normalizePaging(page, pageSize)
	filters = normalizeFilters(filters)
	terms := ParseQuery(query)

	types := filters.Types
	if len(types) == 0 {
		types = AllSearchTypes
	}

	merged := []*SearchResult{}
	counts := make(map[SearchType]int)

	for _, searchType := range types {
		var results []*SearchResult
		var err error

		switch searchType {
		case SearchTypeMeeting:
			results, err = s.globalMeetings(ctx, terms, filters)
		case SearchTypePost:
			results, err = s.globalPosts(ctx, terms, filters)
		case SearchTypeComment:
			results, err = s.globalComments(ctx, terms, filters)
		case SearchTypeUser:
			results, err = s.globalUsers(ctx, terms, filters)
		default:
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("global search failed: %w", err)
		}

		counts[searchType] = len(results)
		merged = append(merged, results...)
	}

	sortMerged(merged, filters)

	total := len(merged)
	pageItems := paginate(merged, page, pageSize)
	duration := time.Since(start)

	s.recordSearchQuery(ctx, SearchTypeGlobal, query, total, duration)

	return &SearchResultsPage{
		Query:        query,
		Results:      pageItems,
		TotalCount:   total,
		Page:         page,
		PageSize:     pageSize,
		CountsByType: counts,
		DurationMs:   duration.Milliseconds(),
	}, nil
}

// sortMerged orders the merged set deterministically: "date" and "title"
// honor the requested direction, everything else ranks by relevance
// descending with creation date descending as tie-break. Id and type break
// any remaining ties so the order never depends on sub-query order.
func sortMerged(results []*SearchResult, filters *SearchFilters) {
	asc := strings.EqualFold(filters.SortDirection, "asc")

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		switch strings.ToLower(filters.SortBy) {
		case "date":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				if asc {
					return a.CreatedAt.Before(b.CreatedAt)
				}
				return a.CreatedAt.After(b.CreatedAt)
			}
		case "title":
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at != bt {
				if asc {
					return at < bt
				}
				return at > bt
			}
		default:
			if a.Relevance != b.Relevance {
				return a.Relevance > b.Relevance
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}

		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Id < b.Id
	})
}

// SearchMeetings returns one page of meetings matching the query.
func (s *SearchService) SearchMeetings(ctx context.Context, query string, filters *SearchFilters, page, pageSize int) ([]*MeetingSearchResult, error) {
	start := time.Now()
	page, pageSize = normalizePaging(page, pageSize)
	filters = normalizeFilters(filters)
	terms := ParseQuery(query)

	results, err := s.queryMeetings(ctx, terms, filters)
	if err != nil {
		return nil, fmt.Errorf("meeting search failed: %w", err)
	}

	s.recordSearchQuery(ctx, SearchTypeMeeting, query, len(results), time.Since(start))

	return paginate(results, page, pageSize), nil
}

// SearchPosts returns one page of posts matching the query.
func (s *SearchService) SearchPosts(ctx context.Context, query string, filters *SearchFilters, page, pageSize int) ([]*PostSearchResult, error) {
	start := time.Now()
	page, pageSize = normalizePaging(page, pageSize)
	filters = normalizeFilters(filters)
	terms := ParseQuery(query)

	results, err := s.queryPosts(ctx, terms, filters)
	if err != nil {
		return nil, fmt.Errorf("post search failed: %w", err)
	}

	s.recordSearchQuery(ctx, SearchTypePost, query, len(results), time.Since(start))

	return paginate(results, page, pageSize), nil
}

// SearchComments returns one page of comments matching the query.
func (s *SearchService) SearchComments(ctx context.Context, query string, filters *SearchFilters, page, pageSize int) ([]*CommentSearchResult, error) {
	start := time.Now()
	page, pageSize = normalizePaging(page, pageSize)
	filters = normalizeFilters(filters)
	terms := ParseQuery(query)

	results, err := s.queryComments(ctx, terms, filters)
	if err != nil {
		return nil, fmt.Errorf("comment search failed: %w", err)
	}

	s.recordSearchQuery(ctx, SearchTypeComment, query, len(results), time.Since(start))

	return paginate(results, page, pageSize), nil
}

// SearchUsers returns one page of users matching the query.
func (s *SearchService) SearchUsers(ctx context.Context, query string, filters *SearchFilters, page, pageSize int) ([]*UserSearchResult, error) {
	start := time.Now()
	page, pageSize = normalizePaging(page, pageSize)
	filters = normalizeFilters(filters)
	terms := ParseQuery(query)

	results, err := s.queryUsers(ctx, terms, filters)
	if err != nil {
		return nil, fmt.Errorf("user search failed: %w", err)
	}

	s.recordSearchQuery(ctx, SearchTypeUser, query, len(results), time.Since(start))

	return paginate(results, page, pageSize), nil
}

// containment builds the textual predicate: a row matches when any term is
// a case-insensitive substring of any of the listed columns. An empty term
// set matches nothing.
func containment(query *gorm.DB, terms []string, columns ...string) *gorm.DB {
	conditions := make([]string, 0, len(terms)*len(columns))
	args := make([]any, 0, len(terms)*len(columns))

	for _, term := range terms {
		pattern := "%" + strings.ToLower(term) + "%"
		for _, column := range columns {
			conditions = append(conditions, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}
	}

	return query.Where(strings.Join(conditions, " OR "), args...)
}

func (s *SearchService) queryMeetings(ctx context.Context, terms []string, filters *SearchFilters) ([]*MeetingSearchResult, error) {
	if len(terms) == 0 {
		return []*MeetingSearchResult{}, nil
	}

	query := s.DB.WithContext(ctx).Model(&models.Meeting{}).Preload("Organizer")
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.FromDate != nil {
		query = query.Where("start_time >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("start_time <= ?", *filters.ToDate)
	}
	if len(filters.Authors) > 0 {
		query = query.Where("organizer_id IN ?", filters.Authors)
	}
	query = containment(query, terms, "title", "description")

	var rows []*models.Meeting
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]*MeetingSearchResult, len(rows))
	for i, row := range rows {
		organizerName := ""
		if row.Organizer != nil {
			organizerName = row.Organizer.FullName()
		}
		results[i] = &MeetingSearchResult{
			Id:            row.Id,
			Title:         row.Title,
			Description:   row.Description,
			Location:      row.Location,
			StartTime:     row.StartTime,
			OrganizerName: organizerName,
			CreatedAt:     row.CreatedAt,
			Relevance:     RelevanceScore(row.Title+" "+row.Description, terms),
		}
	}

	sortResults(results, filters, "date",
		func(r *MeetingSearchResult) time.Time { return r.CreatedAt },
		func(r *MeetingSearchResult) string { return r.Title },
		func(r *MeetingSearchResult) float64 { return r.Relevance })

	return results, nil
}

func (s *SearchService) queryPosts(ctx context.Context, terms []string, filters *SearchFilters) ([]*PostSearchResult, error) {
	if len(terms) == 0 {
		return []*PostSearchResult{}, nil
	}

	query := s.DB.WithContext(ctx).Model(&models.Post{}).Preload("Author").Preload("Meeting")
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.FromDate != nil {
		query = query.Where("created_at >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("created_at <= ?", *filters.ToDate)
	}
	if len(filters.Authors) > 0 {
		query = query.Where("author_id IN ?", filters.Authors)
	}
	query = containment(query, terms, "title", "content")

	var rows []*models.Post
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]*PostSearchResult, len(rows))
	for i, row := range rows {
		authorName := ""
		if row.Author != nil {
			authorName = row.Author.FullName()
		}
		meetingTitle := ""
		if row.Meeting != nil {
			meetingTitle = row.Meeting.Title
		}
		results[i] = &PostSearchResult{
			Id:           row.Id,
			Title:        row.Title,
			Content:      row.Content,
			AuthorName:   authorName,
			MeetingTitle: meetingTitle,
			CreatedAt:    row.CreatedAt,
			Relevance:    RelevanceScore(row.Title+" "+row.Content, terms),
		}
	}

	sortResults(results, filters, "date",
		func(r *PostSearchResult) time.Time { return r.CreatedAt },
		func(r *PostSearchResult) string { return r.Title },
		func(r *PostSearchResult) float64 { return r.Relevance })

	return results, nil
}

func (s *SearchService) queryComments(ctx context.Context, terms []string, filters *SearchFilters) ([]*CommentSearchResult, error) {
	if len(terms) == 0 {
		return []*CommentSearchResult{}, nil
	}

	query := s.DB.WithContext(ctx).Model(&models.Comment{}).Preload("Author").Preload("Post")
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.FromDate != nil {
		query = query.Where("created_at >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("created_at <= ?", *filters.ToDate)
	}
	if len(filters.Authors) > 0 {
		query = query.Where("author_id IN ?", filters.Authors)
	}
	query = containment(query, terms, "content")

	var rows []*models.Comment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]*CommentSearchResult, len(rows))
	for i, row := range rows {
		authorName := ""
		if row.Author != nil {
			authorName = row.Author.FullName()
		}
		postTitle := ""
		if row.Post != nil {
			postTitle = row.Post.Title
		}
		results[i] = &CommentSearchResult{
			Id:         row.Id,
			Content:    row.Content,
			AuthorName: authorName,
			PostTitle:  postTitle,
			PostId:     row.PostId,
			CreatedAt:  row.CreatedAt,
			Relevance:  RelevanceScore(row.Content, terms),
		}
	}

	sortResults(results, filters, "date",
		func(r *CommentSearchResult) time.Time { return r.CreatedAt },
		func(r *CommentSearchResult) string { return r.Content },
		func(r *CommentSearchResult) float64 { return r.Relevance })

	return results, nil
}

func (s *SearchService) queryUsers(ctx context.Context, terms []string, filters *SearchFilters) ([]*UserSearchResult, error) {
	if len(terms) == 0 {
		return []*UserSearchResult{}, nil
	}

	query := s.DB.WithContext(ctx).Model(&users.User{})
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.FromDate != nil {
		query = query.Where("created_at >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("created_at <= ?", *filters.ToDate)
	}
	if len(filters.Authors) > 0 {
		query = query.Where("id IN ?", filters.Authors)
	}
	query = containment(query, terms, "first_name", "last_name", "email")

	var rows []*users.User
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	// User search reads ascending unless the caller says otherwise.
	userFilters := *filters
	if userFilters.SortDirection == "" {
		userFilters.SortDirection = "asc"
	}

	results := make([]*UserSearchResult, len(rows))
	for i, row := range rows {
		results[i] = &UserSearchResult{
			Id:        row.Id,
			FullName:  row.FullName(),
			Username:  row.Username,
			Email:     row.Email,
			CreatedAt: row.CreatedAt,
			Relevance: RelevanceScore(row.FullName()+" "+row.Email, terms),
		}
	}

	sortResults(results, &userFilters, "date",
		func(r *UserSearchResult) time.Time { return r.CreatedAt },
		func(r *UserSearchResult) string { return r.FullName },
		func(r *UserSearchResult) float64 { return r.Relevance })

	return results, nil
}

// sortResults orders a per-type result set. Supported keys are "date",
// "title" and "relevance"; anything else falls back to creation date
// descending.
func sortResults[T any](results []T, filters *SearchFilters, defaultSortBy string,
	date func(T) time.Time, title func(T) string, relevance func(T) float64) {

	sortBy := strings.ToLower(filters.SortBy)
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	direction := strings.ToLower(filters.SortDirection)
	if direction == "" {
		direction = "desc"
	}
	asc := direction == "asc"

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		switch sortBy {
		case "date":
			if asc {
				return date(a).Before(date(b))
			}
			return date(a).After(date(b))
		case "title":
			at, bt := strings.ToLower(title(a)), strings.ToLower(title(b))
			if asc {
				return at < bt
			}
			return at > bt
		case "relevance":
			if relevance(a) != relevance(b) {
				if asc {
					return relevance(a) < relevance(b)
				}
				return relevance(a) > relevance(b)
			}
			return date(a).After(date(b))
		default:
			return date(a).After(date(b))
		}
	})
}

func (s *SearchService) globalMeetings(ctx context.Context, terms []string, filters *SearchFilters) ([]*SearchResult, error) {
	items, err := s.queryMeetings(ctx, terms, filters)
	if err != nil {
		return nil, err
	}
	results := make([]*SearchResult, len(items))
	for i, item := range items {
		results[i] = &SearchResult{
			Id:         item.Id,
			Type:       SearchTypeMeeting,
			Title:      item.Title,
			Snippet:    item.Description,
			AuthorName: item.OrganizerName,
			CreatedAt:  item.CreatedAt,
			Relevance:  item.Relevance,
			Metadata: map[string]any{
				"start_time": item.StartTime,
				"location":   item.Location,
			},
		}
	}
	return results, nil
}

func (s *SearchService) globalPosts(ctx context.Context, terms []string, filters *SearchFilters) ([]*SearchResult, error) {
	items, err := s.queryPosts(ctx, terms, filters)
	if err != nil {
		return nil, err
	}
	results := make([]*SearchResult, len(items))
	for i, item := range items {
		result := &SearchResult{
			Id:         item.Id,
			Type:       SearchTypePost,
			Title:      item.Title,
			Snippet:    item.Content,
			AuthorName: item.AuthorName,
			CreatedAt:  item.CreatedAt,
			Relevance:  item.Relevance,
		}
		if item.MeetingTitle != "" {
			result.Metadata = map[string]any{"meeting_title": item.MeetingTitle}
		}
		results[i] = result
	}
	return results, nil
}

func (s *SearchService) globalComments(ctx context.Context, terms []string, filters *SearchFilters) ([]*SearchResult, error) {
	items, err := s.queryComments(ctx, terms, filters)
	if err != nil {
		return nil, err
	}
	results := make([]*SearchResult, len(items))
	for i, item := range items {
		results[i] = &SearchResult{
			Id:         item.Id,
			Type:       SearchTypeComment,
			Title:      item.PostTitle,
			Snippet:    item.Content,
			AuthorName: item.AuthorName,
			CreatedAt:  item.CreatedAt,
			Relevance:  item.Relevance,
			Metadata: map[string]any{
				"post_id":    item.PostId,
				"post_title": item.PostTitle,
			},
		}
	}
	return results, nil
}

func (s *SearchService) globalUsers(ctx context.Context, terms []string, filters *SearchFilters) ([]*SearchResult, error) {
	items, err := s.queryUsers(ctx, terms, filters)
	if err != nil {
		return nil, err
	}
	results := make([]*SearchResult, len(items))
	for i, item := range items {
		results[i] = &SearchResult{
			Id:         item.Id,
			Type:       SearchTypeUser,
			Title:      item.FullName,
			Snippet:    item.Email,
			AuthorName: item.FullName,
			CreatedAt:  item.CreatedAt,
			Relevance:  item.Relevance,
			Metadata: map[string]any{
				"username": item.Username,
			},
		}
	}
	return results, nil
}

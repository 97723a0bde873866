package search

import "time"

// SearchType identifies which entity set a search runs against.
type SearchType string

const (
	SearchTypeGlobal  SearchType = "global"
	SearchTypeMeeting SearchType = "meeting"
	SearchTypePost    SearchType = "post"
	SearchTypeComment SearchType = "comment"
	SearchTypeUser    SearchType = "user"
)

// AllSearchTypes is the set searched when no type filter is given.
var AllSearchTypes = []SearchType{
	SearchTypeMeeting,
	SearchTypePost,
	SearchTypeComment,
	SearchTypeUser,
}

// ParseSearchType maps a request value onto a known SearchType.
func ParseSearchType(s string) (SearchType, bool) {
	switch SearchType(s) {
	case SearchTypeGlobal, SearchTypeMeeting, SearchTypePost, SearchTypeComment, SearchTypeUser:
		return SearchType(s), true
	default:
		return "", false
	}
}

// SearchFilters narrows and orders a search. Zero value means: all types,
// no date range, no author filter, active rows only, operation defaults
// for sorting.
type SearchFilters struct {
	Types         []SearchType `json:"types,omitempty"`
	FromDate      *time.Time   `json:"from_date,omitempty"`
	ToDate        *time.Time   `json:"to_date,omitempty"`
	Authors       []uint       `json:"authors,omitempty"`
	ActiveOnly    bool         `json:"active_only"`
	SortBy        string       `json:"sort_by,omitempty"`
	SortDirection string       `json:"sort_direction,omitempty"`
}

// DefaultFilters returns the filters applied when the caller supplies none.
func DefaultFilters() *SearchFilters {
	return &SearchFilters{ActiveOnly: true}
}

// MeetingSearchResult is the projection returned for a matching meeting.
type MeetingSearchResult struct {
	Id            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartTime     time.Time `json:"start_time"`
	OrganizerName string    `json:"organizer_name"`
	CreatedAt     time.Time `json:"created_at"`
	Relevance     float64   `json:"relevance"`
}

// PostSearchResult is the projection returned for a matching post.
type PostSearchResult struct {
	Id           uint      `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorName   string    `json:"author_name"`
	MeetingTitle string    `json:"meeting_title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Relevance    float64   `json:"relevance"`
}

// CommentSearchResult is the projection returned for a matching comment.
type CommentSearchResult struct {
	Id         uint      `json:"id"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	PostTitle  string    `json:"post_title"`
	PostId     uint      `json:"post_id"`
	CreatedAt  time.Time `json:"created_at"`
	Relevance  float64   `json:"relevance"`
}

// UserSearchResult is the projection returned for a matching user.
type UserSearchResult struct {
	Id        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Relevance float64   `json:"relevance"`
}

// SearchResult is one entry of a merged global search page.
type SearchResult struct {
	Id         uint           `json:"id"`
	Type       SearchType     `json:"type"`
	Title      string         `json:"title"`
	Snippet    string         `json:"snippet,omitempty"`
	AuthorName string         `json:"author_name,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	Relevance  float64        `json:"relevance"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// SearchResultsPage is the global search response: one page of the merged
// result set plus pre-pagination counts.
type SearchResultsPage struct {
	Query        string             `json:"query"`
	Results      []*SearchResult    `json:"results"`
	TotalCount   int                `json:"total_count"`
	Page         int                `json:"page"`
	PageSize     int                `json:"page_size"`
	CountsByType map[SearchType]int `json:"counts_by_type"`
	DurationMs   int64              `json:"duration_ms"`
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Text  string `json:"text"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

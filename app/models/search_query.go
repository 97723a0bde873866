package models

import "time"

// SearchQuery is an audit row recorded once per search execution. It is
// written on a best-effort basis after the response is produced and is
// only ever read back by the popular-terms aggregation.
type SearchQuery struct {
	Id         uint      `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time `json:"created_at"`
	Query      string    `json:"query" gorm:"size:500;index"`
	SearchType string    `json:"search_type" gorm:"size:20;index"`
	UserId     *uint     `json:"user_id,omitempty"`
	ResultCount int      `json:"result_count"`
	DurationMs int64     `json:"duration_ms"`
	IpAddress  string    `json:"ip_address" gorm:"size:64"`
	UserAgent  string    `json:"user_agent" gorm:"size:500"`
}

// TableName returns the table name for the SearchQuery model
func (m *SearchQuery) TableName() string {
	return "search_queries"
}

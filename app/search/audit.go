package search

import (
	"context"
	"strings"
	"time"

	"gatherly/app/models"
	"gatherly/core/logger"
)

// RequestInfo carries best-effort request metadata into the audit row.
type RequestInfo struct {
	UserId    *uint
	IpAddress string
	UserAgent string
}

type requestInfoKey struct{}

// WithRequestInfo attaches request metadata for audit recording.
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

func requestInfoFrom(ctx context.Context) RequestInfo {
	info, _ := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info
}

// recordSearchQuery writes the audit row for one search execution. The
// write runs on its own goroutine, detached from the request context, and
// its outcome is discarded: the search response never waits on it and
// never fails because of it.
func (s *SearchService) recordSearchQuery(ctx context.Context, searchType SearchType, query string, resultCount int, duration time.Duration) {
	trimmed := strings.TrimSpace(query)
	info := requestInfoFrom(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.Logger.Debug("search audit recording panicked", logger.Any("recovered", r))
			}
		}()

		row := &models.SearchQuery{
			Query:       trimmed,
			SearchType:  string(searchType),
			UserId:      info.UserId,
			ResultCount: resultCount,
			DurationMs:  duration.Milliseconds(),
			IpAddress:   info.IpAddress,
			UserAgent:   info.UserAgent,
		}

		if err := s.DB.Create(row).Error; err != nil {
			s.Logger.Debug("search audit recording failed", logger.String("error", err.Error()))
		}
	}()
}

package activities

import (
	"fmt"
	"math"

	"gatherly/app/comments"
	"gatherly/app/meetings"
	"gatherly/app/models"
	"gatherly/app/posts"
	"gatherly/core/emitter"
	"gatherly/core/logger"
	"gatherly/core/types"

	"gorm.io/gorm"
)

type ActivityService struct {
	DB      *gorm.DB
	Emitter *emitter.Emitter
	Logger  logger.Logger
}

func NewActivityService(db *gorm.DB, emitter *emitter.Emitter, logger logger.Logger) *ActivityService {
	return &ActivityService{
		DB:      db,
		Logger:  logger,
		Emitter: emitter,
	}
}

// RegisterListeners subscribes to the domain events that feed the
// activity log. Called once at module init.
func (s *ActivityService) RegisterListeners() {
	s.Emitter.On(meetings.CreateMeetingEvent, func(data any) {
		if meeting, ok := data.(*models.Meeting); ok {
			s.record(meeting.OrganizerId, "meeting", meeting.Id, "create",
				fmt.Sprintf("Created meeting %q", meeting.Title))
		}
	})
	s.Emitter.On(meetings.JoinMeetingEvent, func(data any) {
		if attendance, ok := data.(*models.Attendance); ok {
			s.record(attendance.UserId, "meeting", attendance.MeetingId, "join",
				"Joined a meeting")
		}
	})
	s.Emitter.On(posts.CreatePostEvent, func(data any) {
		if post, ok := data.(*models.Post); ok {
			s.record(post.AuthorId, "post", post.Id, "create",
				fmt.Sprintf("Published %q", post.Title))
		}
	})
	s.Emitter.On(comments.CreateCommentEvent, func(data any) {
		if comment, ok := data.(*models.Comment); ok {
			s.record(comment.AuthorId, "comment", comment.Id, "create",
				"Commented on a post")
		}
	})
}

func (s *ActivityService) record(userId uint, entityType string, entityId uint, action, summary string) {
	activity := &models.Activity{
		UserId:     userId,
		EntityType: entityType,
		EntityId:   entityId,
		Action:     action,
		Summary:    summary,
	}

	if err := s.DB.Create(activity).Error; err != nil {
		s.Logger.Error("failed to record activity",
			logger.String("error", err.Error()),
			logger.String("entity_type", entityType),
			logger.Uint("user_id", userId))
	}
}

// GetFeed returns a page of activity entries, newest first, optionally
// narrowed to one user.
func (s *ActivityService) GetFeed(userId *uint, page *int, limit *int) (*types.PaginatedResponse, error) {
	var items []*models.Activity
	var total int64

	query := s.DB.Model(&models.Activity{})
	if userId != nil {
		query = query.Where("user_id = ?", *userId)
	}

	defaultPage := 1
	defaultLimit := 10
	if page == nil {
		page = &defaultPage
	}
	if limit == nil {
		limit = &defaultLimit
	}

	if err := query.Count(&total).Error; err != nil {
		s.Logger.Error("failed to count activities",
			logger.String("error", err.Error()))
		return nil, err
	}

	offset := (*page - 1) * *limit
	query = query.Offset(offset).Limit(*limit).Order("created_at desc")

	if err := query.Find(&items).Error; err != nil {
		s.Logger.Error("failed to get activities",
			logger.String("error", err.Error()))
		return nil, err
	}

	responses := make([]*models.ActivityResponse, len(items))
	for i, item := range items {
		responses[i] = item.ToResponse()
	}

	totalPages := int(math.Ceil(float64(total) / float64(*limit)))
	if totalPages == 0 {
		totalPages = 1
	}

	return &types.PaginatedResponse{
		Data: responses,
		Pagination: types.Pagination{
			Total:      int(total),
			Page:       *page,
			PageSize:   *limit,
			TotalPages: totalPages,
		},
	}, nil
}

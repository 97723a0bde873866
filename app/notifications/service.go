package notifications

import (
	"fmt"
	"math"
	"time"

	"gatherly/app/comments"
	"gatherly/app/follows"
	"gatherly/app/meetings"
	"gatherly/app/models"
	"gatherly/core/emitter"
	"gatherly/core/logger"
	"gatherly/core/types"
	"gatherly/core/websocket"

	"gorm.io/gorm"
)

type NotificationService struct {
	DB      *gorm.DB
	Emitter *emitter.Emitter
	Logger  logger.Logger
	Hub     *websocket.Hub
}

func NewNotificationService(db *gorm.DB, emitter *emitter.Emitter, hub *websocket.Hub, logger logger.Logger) *NotificationService {
	return &NotificationService{
		DB:      db,
		Logger:  logger,
		Emitter: emitter,
		Hub:     hub,
	}
}

// RegisterListeners subscribes to the domain events that produce
// notifications. Called once at module init.
func (s *NotificationService) RegisterListeners() {
	s.Emitter.On(meetings.JoinMeetingEvent, s.onMeetingJoin)
	s.Emitter.On(comments.CreateCommentEvent, s.onComment)
	s.Emitter.On(follows.FollowEvent, s.onFollow)
}

func (s *NotificationService) onMeetingJoin(data any) {
	attendance, ok := data.(*models.Attendance)
	if !ok {
		return
	}

	meeting := &models.Meeting{}
	if err := s.DB.First(meeting, attendance.MeetingId).Error; err != nil {
		s.Logger.Error("failed to load meeting for join notification",
			logger.String("error", err.Error()),
			logger.Uint("meeting_id", attendance.MeetingId))
		return
	}

	// The organizer joining their own meeting is not news.
	if meeting.OrganizerId == attendance.UserId {
		return
	}

	s.Notify(&models.Notification{
		UserId:    meeting.OrganizerId,
		Title:     "New attendee",
		Body:      fmt.Sprintf("Someone joined your meeting %q", meeting.Title),
		Type:      models.NotificationMeetingJoin,
		ActionUrl: fmt.Sprintf("/meetings/%d", meeting.Id),
	})
}

func (s *NotificationService) onComment(data any) {
	comment, ok := data.(*models.Comment)
	if !ok || comment.Post == nil {
		return
	}

	// Commenting on your own post is not news.
	if comment.Post.AuthorId == comment.AuthorId {
		return
	}

	s.Notify(&models.Notification{
		UserId:    comment.Post.AuthorId,
		Title:     "New comment",
		Body:      fmt.Sprintf("New comment on your post %q", comment.Post.Title),
		Type:      models.NotificationComment,
		ActionUrl: fmt.Sprintf("/posts/%d", comment.PostId),
	})
}

func (s *NotificationService) onFollow(data any) {
	follow, ok := data.(*models.Follow)
	if !ok {
		return
	}

	body := "You have a new follower"
	if follow.Follower != nil {
		body = fmt.Sprintf("%s started following you", follow.Follower.FullName())
	}

	s.Notify(&models.Notification{
		UserId:    follow.FolloweeId,
		Title:     "New follower",
		Body:      body,
		Type:      models.NotificationFollow,
		ActionUrl: fmt.Sprintf("/users/%d", follow.FollowerId),
	})
}

// Notify stores the notification and pushes it to the target user's
// websocket sessions when the hub is available.
func (s *NotificationService) Notify(item *models.Notification) {
	if err := s.DB.Create(item).Error; err != nil {
		s.Logger.Error("failed to create notification",
			logger.String("error", err.Error()),
			logger.Uint("user_id", item.UserId))
		return
	}

	if s.Hub != nil {
		s.Hub.SendToUser(item.UserId, websocket.Message{
			Type:    "notification",
			Payload: item.ToResponse(),
		})
	}
}

// GetForUser returns a page of the user's notifications, newest first.
func (s *NotificationService) GetForUser(userId uint, page *int, limit *int) (*types.PaginatedResponse, error) {
	var items []*models.Notification
	var total int64

	query := s.DB.Model(&models.Notification{}).Where("user_id = ?", userId)

	defaultPage := 1
	defaultLimit := 10
	if page == nil {
		page = &defaultPage
	}
	if limit == nil {
		limit = &defaultLimit
	}

	if err := query.Count(&total).Error; err != nil {
		s.Logger.Error("failed to count notifications",
			logger.String("error", err.Error()))
		return nil, err
	}

	offset := (*page - 1) * *limit
	query = query.Offset(offset).Limit(*limit).Order("created_at desc")

	if err := query.Find(&items).Error; err != nil {
		s.Logger.Error("failed to get notifications",
			logger.String("error", err.Error()))
		return nil, err
	}

	responses := make([]*models.NotificationResponse, len(items))
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

// UnreadCount returns how many unread notifications the user has.
func (s *NotificationService) UnreadCount(userId uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userId, false).
		Count(&count).Error
	if err != nil {
		s.Logger.Error("failed to count unread notifications",
			logger.String("error", err.Error()),
			logger.Uint("user_id", userId))
		return 0, err
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(id, userId uint) (*models.Notification, error) {
	item := &models.Notification{}
	if err := s.DB.Where("id = ? AND user_id = ?", id, userId).First(item).Error; err != nil {
		return nil, err
	}

	if !item.Read {
		now := time.Now()
		item.Read = true
		item.ReadAt = &now
		if err := s.DB.Save(item).Error; err != nil {
			s.Logger.Error("failed to mark notification read",
				logger.String("error", err.Error()),
				logger.Uint("id", id))
			return nil, err
		}
	}

	return item, nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(userId uint) error {
	now := time.Now()
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userId, false).
		Updates(map[string]any{"read": true, "read_at": now}).Error
	if err != nil {
		s.Logger.Error("failed to mark notifications read",
			logger.String("error", err.Error()),
			logger.Uint("user_id", userId))
	}
	return err
}

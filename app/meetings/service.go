package meetings

import (
	"errors"
	"math"

	"gatherly/app/models"
	"gatherly/core/emitter"
	"gatherly/core/logger"
	"gatherly/core/storage"
	"gatherly/core/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	CreateMeetingEvent = "meetings.create"
	UpdateMeetingEvent = "meetings.update"
	DeleteMeetingEvent = "meetings.delete"
	JoinMeetingEvent   = "meetings.join"
	LeaveMeetingEvent  = "meetings.leave"
)

// ErrMeetingFull is returned when a meeting has reached MaxAttendees.
var ErrMeetingFull = errors.New("meeting is full")

// ErrAlreadyJoined is returned when a user joins a meeting twice.
var ErrAlreadyJoined = errors.New("already joined this meeting")

// ErrNotOrganizer is returned when a non-organizer mutates a meeting.
var ErrNotOrganizer = errors.New("only the organizer can modify this meeting")

type MeetingService struct {
	DB      *gorm.DB
	Emitter *emitter.Emitter
	Storage *storage.ActiveStorage
	Logger  logger.Logger
}

func NewMeetingService(db *gorm.DB, emitter *emitter.Emitter, activeStorage *storage.ActiveStorage, logger logger.Logger) *MeetingService {
	if activeStorage != nil {
		activeStorage.RegisterAttachment("meeting", storage.AttachmentConfig{
			Field:             "cover",
			Path:              "covers",
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
			MaxFileSize:       10 << 20, // 10MB
		})
	}
	return &MeetingService{
		DB:      db,
		Logger:  logger,
		Emitter: emitter,
		Storage: activeStorage,
	}
}

// applySorting applies sorting to the query based on the sort and order parameters
func (s *MeetingService) applySorting(query *gorm.DB, sortBy *string, sortOrder *string) {
	validSortFields := map[string]string{
		"id":         "id",
		"created_at": "created_at",
		"updated_at": "updated_at",
		"title":      "title",
		"location":   "location",
		"start_time": "start_time",
	}

	sortField := "start_time"
	if sortBy != nil && *sortBy != "" {
		if field, exists := validSortFields[*sortBy]; exists {
			sortField = field
		}
	}

	sortDirection := "desc"
	if sortOrder != nil && (*sortOrder == "asc" || *sortOrder == "desc") {
		sortDirection = *sortOrder
	}

	query.Order(sortField + " " + sortDirection)
}

func (s *MeetingService) Create(organizerId uint, req *models.CreateMeetingRequest) (*models.Meeting, error) {
	item := &models.Meeting{
		Title:        req.Title,
		Slug:         slug.Make(req.Title),
		Description:  req.Description,
		Location:     req.Location,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		MaxAttendees: req.MaxAttendees,
		IsActive:     true,
		OrganizerId:  organizerId,
	}

	if err := s.DB.Create(item).Error; err != nil {
		s.Logger.Error("failed to create meeting", logger.String("error", err.Error()))
		return nil, err
	}

	// The organizer attends their own meeting.
	attendance := &models.Attendance{
		MeetingId: item.Id,
		UserId:    organizerId,
		Status:    models.AttendanceGoing,
	}
	if err := s.DB.Create(attendance).Error; err != nil {
		s.Logger.Error("failed to create organizer attendance",
			logger.String("error", err.Error()),
			logger.Uint("meeting_id", item.Id))
	}

	s.Emitter.Emit(CreateMeetingEvent, item)

	return s.GetById(item.Id)
}

func (s *MeetingService) Update(id, actorId uint, req *models.UpdateMeetingRequest) (*models.Meeting, error) {
	item := &models.Meeting{}
	if err := s.DB.First(item, id).Error; err != nil {
		s.Logger.Error("failed to find meeting for update",
			logger.String("error", err.Error()),
			logger.Uint("id", id))
		return nil, err
	}

	if item.OrganizerId != actorId {
		return nil, ErrNotOrganizer
	}

	if req.Title != "" {
		item.Title = req.Title
		item.Slug = slug.Make(req.Title)
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Location != "" {
		item.Location = req.Location
	}
	if req.StartTime != nil {
		item.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		item.EndTime = *req.EndTime
	}
	if req.MaxAttendees != nil {
		item.MaxAttendees = *req.MaxAttendees
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.DB.Save(item).Error; err != nil {
		s.Logger.Error("failed to update meeting",
			logger.String("error", err.Error()),
			logger.Uint("id", id))
		return nil, err
	}

	result, err := s.GetById(item.Id)
	if err != nil {
		return nil, err
	}

	s.Emitter.Emit(UpdateMeetingEvent, result)

	return result, nil
}

func (s *MeetingService) Delete(id, actorId uint) error {
	item := &models.Meeting{}
	if err := s.DB.First(item, id).Error; err != nil {
		s.Logger.Error("failed to find meeting for deletion",
			logger.String("error", err.Error()),
			logger.Uint("id", id))
		return err
	}

	if item.OrganizerId != actorId {
		return ErrNotOrganizer
	}

	if err := s.DB.Delete(item).Error; err != nil {
		s.Logger.Error("failed to delete meeting",
			logger.String("error", err.Error()),
			logger.Uint("id", id))
		return err
	}

	s.Emitter.Emit(DeleteMeetingEvent, item)

	return nil
}

func (s *MeetingService) GetById(id uint) (*models.Meeting, error) {
	item := &models.Meeting{}

	query := item.Preload(s.DB)
	if err := query.First(item, id).Error; err != nil {
		s.Logger.Error("failed to get meeting",
			logger.String("error", err.Error()),
			logger.Uint("id", id))
		return nil, err
	}

	return item, nil
}

func (s *MeetingService) GetAll(page *int, limit *int, sortBy *string, sortOrder *string) (*types.PaginatedResponse, error) {
	var items []*models.Meeting
	var total int64

	query := s.DB.Model(&models.Meeting{})

	defaultPage := 1
	defaultLimit := 10
	if page == nil {
		page = &defaultPage
	}
	if limit == nil {
		limit = &defaultLimit
	}

	if err := query.Count(&total).Error; err != nil {
		s.Logger.Error("failed to count meetings", logger.String("error", err.Error()))
		return nil, err
	}

	offset := (*page - 1) * *limit
	query = query.Offset(offset).Limit(*limit)

	s.applySorting(query, sortBy, sortOrder)

	if err := query.Find(&items).Error; err != nil {
		s.Logger.Error("failed to get meetings", logger.String("error", err.Error()))
		return nil, err
	}

	responses := make([]*models.MeetingListResponse, len(items))
	for i, item := range items {
		responses[i] = item.ToListResponse()
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

// Join adds the user to a meeting, enforcing capacity and uniqueness.
func (s *MeetingService) Join(meetingId, userId uint, status string) (*models.Attendance, error) {
	meeting := &models.Meeting{}
	if err := s.DB.First(meeting, meetingId).Error; err != nil {
		return nil, err
	}

	var existing models.Attendance
	err := s.DB.Where("meeting_id = ? AND user_id = ?", meetingId, userId).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyJoined
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if status == "" {
		status = models.AttendanceGoing
	}

	if meeting.MaxAttendees > 0 && status == models.AttendanceGoing {
		var going int64
		if err := s.DB.Model(&models.Attendance{}).
			Where("meeting_id = ? AND status = ?", meetingId, models.AttendanceGoing).
			Count(&going).Error; err != nil {
			return nil, err
		}
		if going >= int64(meeting.MaxAttendees) {
			return nil, ErrMeetingFull
		}
	}

	attendance := &models.Attendance{
		MeetingId: meetingId,
		UserId:    userId,
		Status:    status,
	}
	if err := s.DB.Create(attendance).Error; err != nil {
		s.Logger.Error("failed to join meeting",
			logger.String("error", err.Error()),
			logger.Uint("meeting_id", meetingId),
			logger.Uint("user_id", userId))
		return nil, err
	}

	s.Emitter.Emit(JoinMeetingEvent, attendance)

	return attendance, nil
}

// Leave removes the user's attendance row.
func (s *MeetingService) Leave(meetingId, userId uint) error {
	var attendance models.Attendance
	err := s.DB.Where("meeting_id = ? AND user_id = ?", meetingId, userId).First(&attendance).Error
	if err != nil {
		return err
	}

	if err := s.DB.Delete(&attendance).Error; err != nil {
		s.Logger.Error("failed to leave meeting",
			logger.String("error", err.Error()),
			logger.Uint("meeting_id", meetingId),
			logger.Uint("user_id", userId))
		return err
	}

	s.Emitter.Emit(LeaveMeetingEvent, &attendance)

	return nil
}

// GetAttendees lists attendance rows for a meeting with users preloaded.
func (s *MeetingService) GetAttendees(meetingId uint) ([]*models.AttendanceResponse, error) {
	var items []*models.Attendance
	err := s.DB.Preload("User").
		Where("meeting_id = ?", meetingId).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		s.Logger.Error("failed to get attendees",
			logger.String("error", err.Error()),
			logger.Uint("meeting_id", meetingId))
		return nil, err
	}

	responses := make([]*models.AttendanceResponse, len(items))
	for i, item := range items {
		responses[i] = item.ToResponse()
	}
	return responses, nil
}

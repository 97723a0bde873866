package models

import (
	"time"

	"gatherly/core/app/users"
	"gatherly/core/storage"

	"gorm.io/gorm"
)

// Meeting represents a scheduled gathering. Cancelled meetings keep their
// row with IsActive set to false.
type Meeting struct {
	Id           uint                `json:"id" gorm:"primarykey"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `json:"deleted_at" gorm:"index"`
	Title        string              `json:"title" gorm:"size:255;not null"`
	Slug         string              `json:"slug" gorm:"size:255;uniqueIndex"`
	Description  string              `json:"description" gorm:"type:text"`
	Location     string              `json:"location" gorm:"size:255"`
	StartTime    time.Time           `json:"start_time" gorm:"index"`
	EndTime      time.Time           `json:"end_time"`
	MaxAttendees int                 `json:"max_attendees"`
	IsActive     bool                `json:"is_active" gorm:"default:true"`
	OrganizerId  uint                `json:"organizer_id" gorm:"index"`
	Organizer    *users.User         `json:"organizer,omitempty" gorm:"foreignKey:OrganizerId;references:Id"`
	Cover        *storage.Attachment `json:"cover,omitempty" gorm:"foreignKey:ModelId;references:Id"`
	Attendances  []Attendance        `json:"attendances,omitempty" gorm:"foreignKey:MeetingId"`
}

// TableName returns the table name for the Meeting model
func (m *Meeting) TableName() string {
	return "meetings"
}

// GetId returns the Id of the model
func (m *Meeting) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *Meeting) GetModelName() string {
	return "meeting"
}

// CreateMeetingRequest represents the request payload for creating a Meeting
type CreateMeetingRequest struct {
	Title        string    `json:"title" binding:"required,max=255"`
	Description  string    `json:"description" binding:"omitempty,max=10000"`
	Location     string    `json:"location" binding:"omitempty,max=255"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time"`
	MaxAttendees int       `json:"max_attendees" binding:"omitempty,min=0"`
}

// UpdateMeetingRequest represents the request payload for updating a Meeting
type UpdateMeetingRequest struct {
	Title        string     `json:"title,omitempty" binding:"omitempty,max=255"`
	Description  string     `json:"description,omitempty" binding:"omitempty,max=10000"`
	Location     string     `json:"location,omitempty" binding:"omitempty,max=255"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	MaxAttendees *int       `json:"max_attendees,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
}

// MeetingResponse represents the API response for Meeting
type MeetingResponse struct {
	Id            uint                      `json:"id"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
	Title         string                    `json:"title"`
	Slug          string                    `json:"slug"`
	Description   string                    `json:"description"`
	Location      string                    `json:"location"`
	StartTime     time.Time                 `json:"start_time"`
	EndTime       time.Time                 `json:"end_time"`
	MaxAttendees  int                       `json:"max_attendees"`
	IsActive      bool                      `json:"is_active"`
	OrganizerId   uint                      `json:"organizer_id"`
	Organizer     *users.UserModelResponse  `json:"organizer,omitempty"`
	CoverURL      string                    `json:"cover_url,omitempty"`
	AttendeeCount int                       `json:"attendee_count"`
}

// MeetingListResponse represents the response for list operations
type MeetingListResponse struct {
	Id            uint      `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Location      string    `json:"location"`
	StartTime     time.Time `json:"start_time"`
	IsActive      bool      `json:"is_active"`
	OrganizerId   uint      `json:"organizer_id"`
	AttendeeCount int       `json:"attendee_count"`
}

// ToResponse converts the model to an API response
func (m *Meeting) ToResponse() *MeetingResponse {
	if m == nil {
		return nil
	}
	response := &MeetingResponse{
		Id:            m.Id,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Title:         m.Title,
		Slug:          m.Slug,
		Description:   m.Description,
		Location:      m.Location,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		MaxAttendees:  m.MaxAttendees,
		IsActive:      m.IsActive,
		OrganizerId:   m.OrganizerId,
		AttendeeCount: len(m.Attendances),
	}
	if m.Organizer != nil {
		response.Organizer = m.Organizer.ToModelResponse()
	}
	if m.Cover != nil {
		response.CoverURL = m.Cover.URL
	}
	return response
}

// ToListResponse converts the model to a list response
func (m *Meeting) ToListResponse() *MeetingListResponse {
	if m == nil {
		return nil
	}
	return &MeetingListResponse{
		Id:            m.Id,
		CreatedAt:     m.CreatedAt,
		Title:         m.Title,
		Slug:          m.Slug,
		Location:      m.Location,
		StartTime:     m.StartTime,
		IsActive:      m.IsActive,
		OrganizerId:   m.OrganizerId,
		AttendeeCount: len(m.Attendances),
	}
}

// Preload preloads all the model's relationships
func (m *Meeting) Preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Organizer").Preload("Attendances")
}

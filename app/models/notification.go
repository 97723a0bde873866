package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification types.
const (
	NotificationMeetingJoin     = "meeting_join"
	NotificationMeetingReminder = "meeting_reminder"
	NotificationComment         = "comment"
	NotificationFollow          = "follow"
)

// Notification is a message produced for one user by activity elsewhere
// in the system.
type Notification struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	UserId    uint           `json:"user_id" gorm:"index;not null"`
	Title     string         `json:"title" gorm:"size:255"`
	Body      string         `json:"body" gorm:"size:2000"`
	Type      string         `json:"type" gorm:"size:50"`
	Read      bool           `json:"read" gorm:"default:false"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	ActionUrl string         `json:"action_url" gorm:"size:500"`
}

// TableName returns the table name for the Notification model
func (m *Notification) TableName() string {
	return "notifications"
}

// NotificationResponse represents the API response for Notification
type NotificationResponse struct {
	Id        uint       `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Type      string     `json:"type"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	ActionUrl string     `json:"action_url"`
}

// ToResponse converts the model to an API response
func (m *Notification) ToResponse() *NotificationResponse {
	if m == nil {
		return nil
	}
	return &NotificationResponse{
		Id:        m.Id,
		CreatedAt: m.CreatedAt,
		Title:     m.Title,
		Body:      m.Body,
		Type:      m.Type,
		Read:      m.Read,
		ReadAt:    m.ReadAt,
		ActionUrl: m.ActionUrl,
	}
}

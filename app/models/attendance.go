package models

import (
	"time"

	"gatherly/core/app/users"

	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendanceGoing    = "going"
	AttendanceMaybe    = "maybe"
	AttendanceDeclined = "declined"
)

// Attendance links a user to a meeting. One row per user/meeting pair.
type Attendance struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	MeetingId uint           `json:"meeting_id" gorm:"uniqueIndex:idx_attendance_pair;not null"`
	UserId    uint           `json:"user_id" gorm:"uniqueIndex:idx_attendance_pair;not null"`
	Status    string         `json:"status" gorm:"size:20;default:going"`
	User      *users.User    `json:"user,omitempty" gorm:"foreignKey:UserId;references:Id"`
}

// TableName returns the table name for the Attendance model
func (m *Attendance) TableName() string {
	return "attendances"
}

// JoinMeetingRequest represents the request payload for joining a meeting
type JoinMeetingRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=going maybe declined"`
}

// AttendanceResponse represents the API response for Attendance
type AttendanceResponse struct {
	Id        uint                     `json:"id"`
	MeetingId uint                     `json:"meeting_id"`
	UserId    uint                     `json:"user_id"`
	Status    string                   `json:"status"`
	User      *users.UserModelResponse `json:"user,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

// ToResponse converts the model to an API response
func (m *Attendance) ToResponse() *AttendanceResponse {
	if m == nil {
		return nil
	}
	response := &AttendanceResponse{
		Id:        m.Id,
		MeetingId: m.MeetingId,
		UserId:    m.UserId,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
	if m.User != nil {
		response.User = m.User.ToModelResponse()
	}
	return response
}

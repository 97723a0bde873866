package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is one entry of the user activity feed, written by listeners
// on the domain events.
type Activity struct {
	Id         uint           `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	UserId     uint           `json:"user_id" gorm:"index;not null"`
	EntityType string         `json:"entity_type" gorm:"size:50;index"`
	EntityId   uint           `json:"entity_id"`
	Action     string         `json:"action" gorm:"size:50"`
	Summary    string         `json:"summary" gorm:"size:500"`
}

// TableName returns the table name for the Activity model
func (m *Activity) TableName() string {
	return "activities"
}

// ActivityResponse represents the API response for Activity
type ActivityResponse struct {
	Id         uint      `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserId     uint      `json:"user_id"`
	EntityType string    `json:"entity_type"`
	EntityId   uint      `json:"entity_id"`
	Action     string    `json:"action"`
	Summary    string    `json:"summary"`
}

// ToResponse converts the model to an API response
func (m *Activity) ToResponse() *ActivityResponse {
	if m == nil {
		return nil
	}
	return &ActivityResponse{
		Id:         m.Id,
		CreatedAt:  m.CreatedAt,
		UserId:     m.UserId,
		EntityType: m.EntityType,
		EntityId:   m.EntityId,
		Action:     m.Action,
		Summary:    m.Summary,
	}
}

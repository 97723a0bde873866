package models

import (
	"time"

	"gatherly/core/app/users"

	"gorm.io/gorm"
)

// Follow links a follower to the user they follow. One row per pair.
type Follow struct {
	Id         uint           `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	FollowerId uint           `json:"follower_id" gorm:"uniqueIndex:idx_follow_pair;not null"`
	FolloweeId uint           `json:"followee_id" gorm:"uniqueIndex:idx_follow_pair;not null"`
	Follower   *users.User    `json:"follower,omitempty" gorm:"foreignKey:FollowerId;references:Id"`
	Followee   *users.User    `json:"followee,omitempty" gorm:"foreignKey:FolloweeId;references:Id"`
}

// TableName returns the table name for the Follow model
func (m *Follow) TableName() string {
	return "follows"
}

// FollowResponse represents the API response for Follow
type FollowResponse struct {
	Id         uint                     `json:"id"`
	FollowerId uint                     `json:"follower_id"`
	FolloweeId uint                     `json:"followee_id"`
	Follower   *users.UserModelResponse `json:"follower,omitempty"`
	Followee   *users.UserModelResponse `json:"followee,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

// ToResponse converts the model to an API response
func (m *Follow) ToResponse() *FollowResponse {
	if m == nil {
		return nil
	}
	response := &FollowResponse{
		Id:         m.Id,
		FollowerId: m.FollowerId,
		FolloweeId: m.FolloweeId,
		CreatedAt:  m.CreatedAt,
	}
	if m.Follower != nil {
		response.Follower = m.Follower.ToModelResponse()
	}
	if m.Followee != nil {
		response.Followee = m.Followee.ToModelResponse()
	}
	return response
}

package users

import (
	"time"

	"gatherly/core/storage"

	"gorm.io/gorm"
)

// User represents a member of the platform. Deactivated users are kept for
// history but excluded from listings and search by default.
type User struct {
	Id        uint                `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string              `json:"first_name" gorm:"column:first_name;not null;size:255"`
	LastName  string              `json:"last_name" gorm:"column:last_name;not null;size:255"`
	Username  string              `json:"username" gorm:"column:username;unique;not null;size:255"`
	Email     string              `json:"email" gorm:"column:email;unique;not null;size:255"`
	Password  string              `json:"-" gorm:"column:password;size:255;not null"` // Hidden from JSON
	Bio       string              `json:"bio" gorm:"column:bio;size:1000"`
	IsActive  bool                `json:"is_active" gorm:"column:is_active;default:true"`
	Avatar    *storage.Attachment `json:"avatar,omitempty" gorm:"foreignKey:ModelId;references:Id"`
	LastLogin *time.Time          `json:"last_login,omitempty" gorm:"column:last_login"`
	CreatedAt time.Time           `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time           `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt      `json:"deleted_at,omitempty" gorm:"column:deleted_at;index"`
}

// TableName returns the table name for the User model
func (m *User) TableName() string {
	return "users"
}

// GetId returns the Id of the model (for storage attachments)
func (m *User) GetId() uint {
	return m.Id
}

// GetModelName returns the model name (for storage attachments)
func (m *User) GetModelName() string {
	return "users"
}

// FullName returns the display name used in listings and search results.
func (m *User) FullName() string {
	return m.FirstName + " " + m.LastName
}

// CreateUserRequest represents the request payload for creating a User
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
	Username  string `json:"username" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=255"`
	Bio       string `json:"bio" binding:"omitempty,max=1000"`
}

// UpdateUserRequest represents the request payload for updating a User
type UpdateUserRequest struct {
	FirstName string `json:"first_name,omitempty" binding:"omitempty,max=255"`
	LastName  string `json:"last_name,omitempty" binding:"omitempty,max=255"`
	Username  string `json:"username,omitempty" binding:"omitempty,max=255"`
	Email     string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Bio       string `json:"bio,omitempty" binding:"omitempty,max=1000"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// UpdatePasswordRequest represents the request for updating own password
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,max=255"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=255"`
}

// UserResponse represents the API response for User
type UserResponse struct {
	Id        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	IsActive  bool      `json:"is_active"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserModelResponse represents a simplified response when User is part of other entities
type UserModelResponse struct {
	Id       uint   `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

// UserSelectOption represents a simplified response for select boxes and dropdowns
type UserSelectOption struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}

// ToResponse converts the model to an API response
func (m *User) ToResponse() *UserResponse {
	if m == nil {
		return nil
	}
	response := &UserResponse{
		Id:        m.Id,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		FullName:  m.FullName(),
		Username:  m.Username,
		Email:     m.Email,
		Bio:       m.Bio,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Avatar != nil {
		response.AvatarURL = m.Avatar.URL
	}
	return response
}

// ToModelResponse converts the model to a simplified response for embedding
func (m *User) ToModelResponse() *UserModelResponse {
	if m == nil {
		return nil
	}
	return &UserModelResponse{
		Id:       m.Id,
		FullName: m.FullName(),
		Username: m.Username,
	}
}

// ToSelectOption converts the model to a select option for dropdowns
func (m *User) ToSelectOption() *UserSelectOption {
	if m == nil {
		return nil
	}
	return &UserSelectOption{
		Id:   m.Id,
		Name: m.FullName(),
	}
}

// Preload preloads all the model's relationships
func (m *User) Preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Avatar")
}

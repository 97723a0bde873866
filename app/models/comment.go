package models

import (
	"time"

	"gatherly/core/app/users"

	"gorm.io/gorm"
)

// Comment represents a reply on a post.
type Comment struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	PostId    uint           `json:"post_id" gorm:"index;not null"`
	AuthorId  uint           `json:"author_id" gorm:"index;not null"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	Post      *Post          `json:"post,omitempty" gorm:"foreignKey:PostId;references:Id"`
	Author    *users.User    `json:"author,omitempty" gorm:"foreignKey:AuthorId;references:Id"`
}

// TableName returns the table name for the Comment model
func (m *Comment) TableName() string {
	return "comments"
}

// CreateCommentRequest represents the request payload for creating a Comment
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
	PostId  uint   `json:"post_id" binding:"required"`
}

// UpdateCommentRequest represents the request payload for updating a Comment
type UpdateCommentRequest struct {
	Content string `json:"content,omitempty" binding:"omitempty,max=10000"`
}

// CommentResponse represents the API response for Comment
type CommentResponse struct {
	Id        uint                     `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
	Content   string                   `json:"content"`
	PostId    uint                     `json:"post_id"`
	AuthorId  uint                     `json:"author_id"`
	IsActive  bool                     `json:"is_active"`
	Author    *users.UserModelResponse `json:"author,omitempty"`
}

// ToResponse converts the model to an API response
func (m *Comment) ToResponse() *CommentResponse {
	if m == nil {
		return nil
	}
	response := &CommentResponse{
		Id:        m.Id,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Content:   m.Content,
		PostId:    m.PostId,
		AuthorId:  m.AuthorId,
		IsActive:  m.IsActive,
	}
	if m.Author != nil {
		response.Author = m.Author.ToModelResponse()
	}
	return response
}

// Preload preloads all the model's relationships
func (m *Comment) Preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Post")
}

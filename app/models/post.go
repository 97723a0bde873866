package models

import (
	"time"

	"gatherly/core/app/users"

	"gorm.io/gorm"
)

// Post represents an update shared by a user, optionally tied to a meeting.
type Post struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Content   string         `json:"content" gorm:"type:text"`
	AuthorId  uint           `json:"author_id" gorm:"index;not null"`
	MeetingId *uint          `json:"meeting_id,omitempty" gorm:"index"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	LikeCount int            `json:"like_count"`
	Author    *users.User    `json:"author,omitempty" gorm:"foreignKey:AuthorId;references:Id"`
	Meeting   *Meeting       `json:"meeting,omitempty" gorm:"foreignKey:MeetingId;references:Id"`
	Comments  []Comment      `json:"comments,omitempty" gorm:"foreignKey:PostId"`
}

// TableName returns the table name for the Post model
func (m *Post) TableName() string {
	return "posts"
}

// GetId returns the Id of the model
func (m *Post) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *Post) GetModelName() string {
	return "post"
}

// CreatePostRequest represents the request payload for creating a Post
type CreatePostRequest struct {
	Title     string `json:"title" binding:"required,max=255"`
	Content   string `json:"content" binding:"omitempty,max=50000"`
	MeetingId *uint  `json:"meeting_id,omitempty"`
}

// UpdatePostRequest represents the request payload for updating a Post
type UpdatePostRequest struct {
	Title    string `json:"title,omitempty" binding:"omitempty,max=255"`
	Content  string `json:"content,omitempty" binding:"omitempty,max=50000"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// PostResponse represents the API response for Post
type PostResponse struct {
	Id           uint                     `json:"id"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
	Title        string                   `json:"title"`
	Content      string                   `json:"content"`
	AuthorId     uint                     `json:"author_id"`
	MeetingId    *uint                    `json:"meeting_id,omitempty"`
	IsActive     bool                     `json:"is_active"`
	LikeCount    int                      `json:"like_count"`
	CommentCount int                      `json:"comment_count"`
	Author       *users.UserModelResponse `json:"author,omitempty"`
}

// PostListResponse represents the response for list operations
type PostListResponse struct {
	Id           uint      `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Title        string    `json:"title"`
	AuthorId     uint      `json:"author_id"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
}

// ToResponse converts the model to an API response
func (m *Post) ToResponse() *PostResponse {
	if m == nil {
		return nil
	}
	response := &PostResponse{
		Id:           m.Id,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Title:        m.Title,
		Content:      m.Content,
		AuthorId:     m.AuthorId,
		MeetingId:    m.MeetingId,
		IsActive:     m.IsActive,
		LikeCount:    m.LikeCount,
		CommentCount: len(m.Comments),
	}
	if m.Author != nil {
		response.Author = m.Author.ToModelResponse()
	}
	return response
}

// ToListResponse converts the model to a list response
func (m *Post) ToListResponse() *PostListResponse {
	if m == nil {
		return nil
	}
	return &PostListResponse{
		Id:           m.Id,
		CreatedAt:    m.CreatedAt,
		Title:        m.Title,
		AuthorId:     m.AuthorId,
		LikeCount:    m.LikeCount,
		CommentCount: len(m.Comments),
	}
}

// Preload preloads all the model's relationships
func (m *Post) Preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Comments")
}

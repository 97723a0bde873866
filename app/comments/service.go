package comments

import (
	"errors"
	"math"

	"gatherly/app/models"
	"gatherly/core/emitter"
	"gatherly/core/logger"
	"gatherly/core/types"

	"gorm.io/gorm"
)

const (
	CreateCommentEvent = "comments.create"
	UpdateCommentEvent = "comments.update"
	DeleteCommentEvent = "comments.delete"
)

// ErrNotAuthor is returned when a non-author mutates a comment.
var ErrNotAuthor = errors.New("only the author can modify this comment")

type CommentService struct {
	DB      *gorm.DB
	Emitter *emitter.Emitter
	Logger  logger.Logger
}

func NewCommentService(db *gorm.DB, emitter *emitter.Emitter, logger logger.Logger) *CommentService {
	return &CommentService{
		DB:      db,
		Logger:  logger,
		Emitter: emitter,
	}
}

func (s *CommentService) Create(authorId uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	var count int64
	if err := s.DB.Model(&models.Post{}).Where("id = ?", req.PostId).Count(&count).Error; err != nil {
		s.Logger.Error("failed to verify post for comment", logger.String("error", err.Error()))
		return nil, err
	}
	if count == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	item := &models.Comment{
		Content:  req.Content,
		PostId:   req.PostId,
		AuthorId: authorId,
		IsActive: true,
	}

	if err := s.DB.Create(item).Error; err != nil {
		s.Logger.Error("failed to create comment", logger.String("error", err.Error()))
		return nil, err
	}

	result, err := s.GetById(item.Id)
	if err != nil {
		return nil, err
	}

	// Emit create event
	s.Emitter.Emit(CreateCommentEvent, result)

	return result, nil
}

func (s *CommentService) Update(id, actorId uint, req *models.UpdateCommentRequest) (*models.Comment, error) {
	item := &models.Comment{}
	if err := s.DB.First(item, id).Error; err != nil {
		s.Logger.Error("failed to find comment for update",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return nil, err
	}

	if item.AuthorId != actorId {
		return nil, ErrNotAuthor
	}

	if req.Content != "" {
		item.Content = req.Content
	}

	if err := s.DB.Save(item).Error; err != nil {
		s.Logger.Error("failed to update comment",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return nil, err
	}

	result, err := s.GetById(item.Id)
	if err != nil {
		return nil, err
	}

	// Emit update event
	s.Emitter.Emit(UpdateCommentEvent, result)

	return result, nil
}

func (s *CommentService) Delete(id, actorId uint) error {
	item := &models.Comment{}
	if err := s.DB.First(item, id).Error; err != nil {
		s.Logger.Error("failed to find comment for deletion",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return err
	}

	if item.AuthorId != actorId {
		return ErrNotAuthor
	}

	if err := s.DB.Delete(item).Error; err != nil {
		s.Logger.Error("failed to delete comment",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return err
	}

	// Emit delete event
	s.Emitter.Emit(DeleteCommentEvent, item)

	return nil
}

func (s *CommentService) GetById(id uint) (*models.Comment, error) {
	item := &models.Comment{}

	query := item.Preload(s.DB)
	if err := query.First(item, id).Error; err != nil {
		s.Logger.Error("failed to get comment",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return nil, err
	}

	return item, nil
}

// GetByPost returns a page of comments for a post, oldest first.
func (s *CommentService) GetByPost(postId uint, page *int, limit *int) (*types.PaginatedResponse, error) {
	var items []*models.Comment
	var total int64

	query := s.DB.Model(&models.Comment{}).Where("post_id = ?", postId)

	defaultPage := 1
	defaultLimit := 10
	if page == nil {
		page = &defaultPage
	}
	if limit == nil {
		limit = &defaultLimit
	}

	if err := query.Count(&total).Error; err != nil {
		s.Logger.Error("failed to count comments",
			logger.String("error", err.Error()))
		return nil, err
	}

	offset := (*page - 1) * *limit
	query = query.Offset(offset).Limit(*limit).Order("created_at asc")

	if err := query.Preload("Author").Find(&items).Error; err != nil {
		s.Logger.Error("failed to get comments",
			logger.String("error", err.Error()))
		return nil, err
	}

	responses := make([]*models.CommentResponse, len(items))
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

package posts

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
	CreatePostEvent = "posts.create"
	UpdatePostEvent = "posts.update"
	DeletePostEvent = "posts.delete"
	LikePostEvent   = "posts.like"
)

// ErrNotAuthor is returned when a non-author mutates a post.
var ErrNotAuthor = errors.New("only the author can modify this post")

type PostService struct {
	DB      *gorm.DB
	Emitter *emitter.Emitter
	Logger  logger.Logger
}

func NewPostService(db *gorm.DB, emitter *emitter.Emitter, logger logger.Logger) *PostService {
	return &PostService{
		DB:      db,
		Logger:  logger,
		Emitter: emitter,
	}
}

// applySorting applies sorting to the query based on the sort and order parameters
func (s *PostService) applySorting(query *gorm.DB, sortBy *string, sortOrder *string) {
	validSortFields := map[string]string{
		"id":         "id",
		"created_at": "created_at",
		"updated_at": "updated_at",
		"title":      "title",
		"like_count": "like_count",
	}

	sortField := "created_at"
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

func (s *PostService) Create(authorId uint, req *models.CreatePostRequest) (*models.Post, error) {
	if req.MeetingId != nil {
		var count int64
		if err := s.DB.Model(&models.Meeting{}).Where("id = ?", *req.MeetingId).Count(&count).Error; err != nil {
			s.Logger.Error("failed to verify meeting for post", logger.String("error", err.Error()))
			return nil, err
		}
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	item := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		AuthorId:  authorId,
		MeetingId: req.MeetingId,
		IsActive:  true,
	}

	if err := s.DB.Create(item).Error; err != nil {
		s.Logger.Error("failed to create post", logger.String("error", err.Error()))
		return nil, err
	}

	// Emit create event
	s.Emitter.Emit(CreatePostEvent, item)

	return s.GetById(item.Id)
}

func (s *PostService) Update(id, actorId uint, req *models.UpdatePostRequest) (*models.Post, error) {
	item := &models.Post{}
	if err := s.DB.First(item, id).Error; err != nil {
		s.Logger.Error("failed to find post for update",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return nil, err
	}

	if item.AuthorId != actorId {
		return nil, ErrNotAuthor
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Content != "" {
		item.Content = req.Content
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.DB.Save(item).Error; err != nil {
		s.Logger.Error("failed to update post",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return nil, err
	}

	result, err := s.GetById(item.Id)
	if err != nil {
		s.Logger.Error("failed to get updated post",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return nil, err
	}

	// Emit update event
	s.Emitter.Emit(UpdatePostEvent, result)

	return result, nil
}

func (s *PostService) Delete(id, actorId uint) error {
	item := &models.Post{}
	if err := s.DB.First(item, id).Error; err != nil {
		s.Logger.Error("failed to find post for deletion",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return err
	}

	if item.AuthorId != actorId {
		return ErrNotAuthor
	}

	if err := s.DB.Delete(item).Error; err != nil {
		s.Logger.Error("failed to delete post",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return err
	}

	// Emit delete event
	s.Emitter.Emit(DeletePostEvent, item)

	return nil
}

func (s *PostService) GetById(id uint) (*models.Post, error) {
	item := &models.Post{}

	query := item.Preload(s.DB)
	if err := query.First(item, id).Error; err != nil {
		s.Logger.Error("failed to get post",
			logger.String("error", err.Error()),
			logger.Int("id", int(id)))
		return nil, err
	}

	return item, nil
}

func (s *PostService) GetAll(page *int, limit *int, sortBy *string, sortOrder *string, meetingId *uint) (*types.PaginatedResponse, error) {
	var items []*models.Post
	var total int64

	query := s.DB.Model(&models.Post{})
	if meetingId != nil {
		query = query.Where("meeting_id = ?", *meetingId)
	}

	defaultPage := 1
	defaultLimit := 10
	if page == nil {
		page = &defaultPage
	}
	if limit == nil {
		limit = &defaultLimit
	}

	// Get total count
	if err := query.Count(&total).Error; err != nil {
		s.Logger.Error("failed to count posts",
			logger.String("error", err.Error()))
		return nil, err
	}

	offset := (*page - 1) * *limit
	query = query.Offset(offset).Limit(*limit)

	// Apply sorting
	s.applySorting(query, sortBy, sortOrder)

	// Execute query
	if err := query.Find(&items).Error; err != nil {
		s.Logger.Error("failed to get posts",
			logger.String("error", err.Error()))
		return nil, err
	}

	// Convert to response type
	responses := make([]*models.PostListResponse, len(items))
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

// Like increments the like counter for a post.
func (s *PostService) Like(id uint) (*models.Post, error) {
	result := s.DB.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	if result.Error != nil {
		s.Logger.Error("failed to like post",
			logger.String("error", result.Error.Error()),
			logger.Int("id", int(id)))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	item, err := s.GetById(id)
	if err != nil {
		return nil, err
	}

	s.Emitter.Emit(LikePostEvent, item)

	return item, nil
}

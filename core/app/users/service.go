package users

import (
	"errors"
	"math"
	"mime/multipart"

	"gatherly/core/emitter"
	"gatherly/core/logger"
	"gatherly/core/storage"
	"gatherly/core/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	CreateUserEvent = "users.create"
	UpdateUserEvent = "users.update"
	DeleteUserEvent = "users.delete"
)

type UserService struct {
	db            *gorm.DB
	emitter       *emitter.Emitter
	activeStorage *storage.ActiveStorage
	logger        logger.Logger
}

func NewUserService(db *gorm.DB, emitter *emitter.Emitter, activeStorage *storage.ActiveStorage, logger logger.Logger) *UserService {
	if db == nil {
		panic("db is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	if activeStorage != nil {
		activeStorage.RegisterAttachment("users", storage.AttachmentConfig{
			Field:             "avatar",
			Path:              "avatars",
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif"},
			MaxFileSize:       5 << 20, // 5MB
		})
	}

	return &UserService{
		db:            db,
		emitter:       emitter,
		activeStorage: activeStorage,
		logger:        logger,
	}
}

// applySorting applies sorting to the query based on the sort and order parameters
func (s *UserService) applySorting(query *gorm.DB, sortBy *string, sortOrder *string) {
	validSortFields := map[string]string{
		"id":         "id",
		"created_at": "created_at",
		"updated_at": "updated_at",
		"first_name": "first_name",
		"last_name":  "last_name",
		"username":   "username",
		"email":      "email",
	}

	sortField := "id"
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

// Create creates a new user with a bcrypt-hashed password.
func (s *UserService) Create(req *CreateUserRequest) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", logger.String("error", err.Error()))
		return nil, err
	}

	item := &User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Bio:       req.Bio,
		IsActive:  true,
	}

	if err := s.db.Create(item).Error; err != nil {
		s.logger.Error("failed to create user", logger.String("error", err.Error()))
		return nil, err
	}

	s.emitter.Emit(CreateUserEvent, item)

	return s.GetById(item.Id)
}

// GetById gets a user by ID with relationships preloaded
func (s *UserService) GetById(id uint) (*User, error) {
	var user User
	query := user.Preload(s.db)
	if err := query.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("User not found", logger.Uint("user_id", id))
		} else {
			s.logger.Error("Database error while fetching user",
				logger.Uint("user_id", id),
				logger.String("error", err.Error()))
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email (used by authentication).
func (s *UserService) GetByEmail(email string) (*User, error) {
	var user User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies non-zero request fields to the user.
func (s *UserService) Update(id uint, req *UpdateUserRequest) (*User, error) {
	item := &User{}
	if err := s.db.First(item, id).Error; err != nil {
		s.logger.Error("failed to find user for update",
			logger.String("error", err.Error()),
			logger.Uint("user_id", id))
		return nil, err
	}

	if req.FirstName != "" {
		item.FirstName = req.FirstName
	}
	if req.LastName != "" {
		item.LastName = req.LastName
	}
	if req.Username != "" {
		item.Username = req.Username
	}
	if req.Email != "" {
		item.Email = req.Email
	}
	if req.Bio != "" {
		item.Bio = req.Bio
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.db.Save(item).Error; err != nil {
		s.logger.Error("failed to update user",
			logger.String("error", err.Error()),
			logger.Uint("user_id", id))
		return nil, err
	}

	result, err := s.GetById(item.Id)
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(UpdateUserEvent, result)

	return result, nil
}

// UpdatePassword verifies the old password and stores a new hash.
func (s *UserService) UpdatePassword(id uint, req *UpdatePasswordRequest) error {
	item := &User{}
	if err := s.db.First(item, id).Error; err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(item.Password), []byte(req.OldPassword)); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(item).Update("password", string(hashed)).Error
}

// Delete soft-deletes a user and removes the avatar attachment.
func (s *UserService) Delete(id uint) error {
	item := &User{}
	if err := s.db.First(item, id).Error; err != nil {
		s.logger.Error("failed to find user for deletion",
			logger.String("error", err.Error()),
			logger.Uint("user_id", id))
		return err
	}

	if s.activeStorage != nil {
		if avatar, err := s.activeStorage.LoadAttachment(item, "avatar"); err == nil {
			if err := s.activeStorage.Delete(avatar); err != nil {
				s.logger.Error("failed to delete avatar",
					logger.String("error", err.Error()),
					logger.Uint("user_id", id))
			}
		}
	}

	if err := s.db.Delete(item).Error; err != nil {
		s.logger.Error("failed to delete user",
			logger.String("error", err.Error()),
			logger.Uint("user_id", id))
		return err
	}

	s.emitter.Emit(DeleteUserEvent, item)

	return nil
}

// GetAll returns a paginated user list.
func (s *UserService) GetAll(page *int, limit *int, sortBy *string, sortOrder *string) (*types.PaginatedResponse, error) {
	var items []*User
	var total int64

	query := s.db.Model(&User{})

	defaultPage := 1
	defaultLimit := 10
	if page == nil {
		page = &defaultPage
	}
	if limit == nil {
		limit = &defaultLimit
	}

	if err := query.Count(&total).Error; err != nil {
		s.logger.Error("failed to count users", logger.String("error", err.Error()))
		return nil, err
	}

	offset := (*page - 1) * *limit
	query = query.Offset(offset).Limit(*limit)

	s.applySorting(query, sortBy, sortOrder)

	if err := query.Find(&items).Error; err != nil {
		s.logger.Error("failed to get users", logger.String("error", err.Error()))
		return nil, err
	}

	responses := make([]*UserResponse, len(items))
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

// GetAllForSelect gets all items for select box/dropdown options
func (s *UserService) GetAllForSelect() ([]*User, error) {
	var items []*User

	query := s.db.Model(&User{}).
		Select("id, first_name, last_name").
		Where("is_active = ?", true).
		Order("first_name ASC")

	if err := query.Find(&items).Error; err != nil {
		s.logger.Error("Failed to fetch items for select", logger.String("error", err.Error()))
		return nil, err
	}

	return items, nil
}

// UpdateAvatar replaces the user's avatar attachment.
func (s *UserService) UpdateAvatar(id uint, file *multipart.FileHeader) (*User, error) {
	item := &User{}
	if err := s.db.First(item, id).Error; err != nil {
		return nil, err
	}

	if existing, err := s.activeStorage.LoadAttachment(item, "avatar"); err == nil {
		if err := s.activeStorage.Delete(existing); err != nil {
			s.logger.Error("failed to delete existing avatar",
				logger.String("error", err.Error()),
				logger.Uint("user_id", id))
			return nil, err
		}
	}

	attachment, err := s.activeStorage.Attach(item, "avatar", file)
	if err != nil {
		s.logger.Error("failed to attach avatar",
			logger.String("error", err.Error()),
			logger.Uint("user_id", id))
		return nil, err
	}

	if err := s.db.Model(item).Association("Avatar").Replace(attachment); err != nil {
		s.logger.Error("failed to associate avatar",
			logger.String("error", err.Error()),
			logger.Uint("user_id", id))
		return nil, err
	}

	return s.GetById(id)
}

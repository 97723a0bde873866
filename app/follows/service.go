package follows

import (
	"errors"

	"gatherly/app/models"
	"gatherly/core/app/users"
	"gatherly/core/emitter"
	"gatherly/core/logger"

	"gorm.io/gorm"
)

const (
	FollowEvent   = "follows.create"
	UnfollowEvent = "follows.delete"
)

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("cannot follow yourself")

// ErrAlreadyFollowing is returned on a duplicate follow.
var ErrAlreadyFollowing = errors.New("already following this user")

type FollowService struct {
	DB      *gorm.DB
	Emitter *emitter.Emitter
	Logger  logger.Logger
}

func NewFollowService(db *gorm.DB, emitter *emitter.Emitter, logger logger.Logger) *FollowService {
	return &FollowService{
		DB:      db,
		Logger:  logger,
		Emitter: emitter,
	}
}

func (s *FollowService) Follow(followerId, followeeId uint) (*models.Follow, error) {
	if followerId == followeeId {
		return nil, ErrSelfFollow
	}

	var count int64
	if err := s.DB.Model(&users.User{}).Where("id = ?", followeeId).Count(&count).Error; err != nil {
		s.Logger.Error("failed to verify followee", logger.String("error", err.Error()))
		return nil, err
	}
	if count == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var existing int64
	if err := s.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerId, followeeId).
		Count(&existing).Error; err != nil {
		s.Logger.Error("failed to check existing follow", logger.String("error", err.Error()))
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyFollowing
	}

	item := &models.Follow{
		FollowerId: followerId,
		FolloweeId: followeeId,
	}

	if err := s.DB.Create(item).Error; err != nil {
		s.Logger.Error("failed to create follow", logger.String("error", err.Error()))
		return nil, err
	}

	if err := s.DB.Preload("Follower").Preload("Followee").First(item, item.Id).Error; err != nil {
		s.Logger.Error("failed to load follow", logger.String("error", err.Error()))
		return nil, err
	}

	s.Emitter.Emit(FollowEvent, item)

	return item, nil
}

func (s *FollowService) Unfollow(followerId, followeeId uint) error {
	item := &models.Follow{}
	if err := s.DB.
		Where("follower_id = ? AND followee_id = ?", followerId, followeeId).
		First(item).Error; err != nil {
		s.Logger.Error("failed to find follow for deletion",
			logger.String("error", err.Error()),
			logger.Uint("follower_id", followerId),
			logger.Uint("followee_id", followeeId))
		return err
	}

	if err := s.DB.Delete(item).Error; err != nil {
		s.Logger.Error("failed to delete follow", logger.String("error", err.Error()))
		return err
	}

	s.Emitter.Emit(UnfollowEvent, item)

	return nil
}

// GetFollowers returns the users following the given user.
func (s *FollowService) GetFollowers(userId uint) ([]*models.FollowResponse, error) {
	var items []*models.Follow
	if err := s.DB.Preload("Follower").
		Where("followee_id = ?", userId).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		s.Logger.Error("failed to get followers",
			logger.String("error", err.Error()),
			logger.Uint("user_id", userId))
		return nil, err
	}

	responses := make([]*models.FollowResponse, len(items))
	for i, item := range items {
		responses[i] = item.ToResponse()
	}

	return responses, nil
}

// GetFollowing returns the users the given user follows.
func (s *FollowService) GetFollowing(userId uint) ([]*models.FollowResponse, error) {
	var items []*models.Follow
	if err := s.DB.Preload("Followee").
		Where("follower_id = ?", userId).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		s.Logger.Error("failed to get following",
			logger.String("error", err.Error()),
			logger.Uint("user_id", userId))
		return nil, err
	}

	responses := make([]*models.FollowResponse, len(items))
	for i, item := range items {
		responses[i] = item.ToResponse()
	}

	return responses, nil
}

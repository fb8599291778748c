package repository

import (
	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(follow *model.UserFollowLojista) error
	Exists(userID, lojistaID uint) (bool, error)
	Delete(userID, lojistaID uint) (int64, error)
	FindByUserID(userID uint) ([]model.UserFollowLojista, error)
	FindFollowers(lojistaID uint) ([]model.User, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(follow *model.UserFollowLojista) error {
	logger.Debug("Creating follow in database", map[string]interface{}{
		"user_id":    follow.UserID,
		"lojista_id": follow.LojistaID,
	})

	if err := r.db.Omit("User", "Lojista").Create(follow).Error; err != nil {
		logger.Error("Failed to create follow in database", err, map[string]interface{}{
			"user_id":    follow.UserID,
			"lojista_id": follow.LojistaID,
		})
		return err
	}
	return nil
}

func (r *followRepository) Exists(userID, lojistaID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserFollowLojista{}).
		Where("user_id = ? AND lojista_id = ?", userID, lojistaID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check follow", err, map[string]interface{}{
			"user_id":    userID,
			"lojista_id": lojistaID,
		})
		return false, err
	}
	return count > 0, nil
}

// Delete removes every follow row of the pair and reports how many went away.
func (r *followRepository) Delete(userID, lojistaID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND lojista_id = ?", userID, lojistaID).Delete(&model.UserFollowLojista{})
	if result.Error != nil {
		logger.Error("Failed to delete follow", result.Error, map[string]interface{}{
			"user_id":    userID,
			"lojista_id": lojistaID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindByUserID returns the user's follows in the order they were created.
func (r *followRepository) FindByUserID(userID uint) ([]model.UserFollowLojista, error) {
	var follows []model.UserFollowLojista
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&follows).Error; err != nil {
		logger.Error("Failed to find follows by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return follows, nil
}

func (r *followRepository) FindFollowers(lojistaID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN user_follow_lojistas ON user_follow_lojistas.user_id = users.id").
		Where("user_follow_lojistas.lojista_id = ?", lojistaID).
		Order("user_follow_lojistas.id ASC").
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to find followers", err, map[string]interface{}{
			"lojista_id": lojistaID,
		})
		return nil, err
	}
	return users, nil
}

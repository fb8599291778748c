package repository

import (
	"errors"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindAll(filter UserFilter) ([]model.User, error)
	Update(user *model.User) error
	UpdateStatus(id uint, status bool) error
	ClearImage(id uint) error
	Delete(id uint) error
	CountByStatus(status bool) (int64, error)
	Count() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find user by ID", err, map[string]interface{}{
				"user_id": id,
			})
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find user by email", err, map[string]interface{}{
				"email": email,
			})
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(filter UserFilter) ([]model.User, error) {
	logger.Debug("Finding users in database", map[string]interface{}{
		"nome":  filter.Nome,
		"email": filter.Email,
	})

	var users []model.User
	if err := applyConditions(r.db, filter.Predicate()).Order("id ASC").Find(&users).Error; err != nil {
		logger.Error("Failed to find users in database", err)
		return nil, err
	}

	logger.Debug("Users found in database", map[string]interface{}{
		"count": len(users),
	})
	return users, nil
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	logger.Debug("User updated in database", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

// ClearImage empties the stored image key without touching other columns.
func (r *userRepository) ClearImage(id uint) error {
	err := r.db.Model(&model.User{}).Where("id = ?", id).Update("foto_perfil", "").Error
	if err != nil {
		logger.Error("Failed to clear user image", err, map[string]interface{}{
			"user_id": id,
		})
	}
	return err
}

func (r *userRepository) UpdateStatus(id uint, status bool) error {
	result := r.db.Model(&model.User{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update user status", result.Error, map[string]interface{}{
			"user_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user and returns gorm.ErrRecordNotFound when no row matched.
func (r *userRepository) Delete(id uint) error {
	logger.Debug("Deleting user from database", map[string]interface{}{
		"user_id": id,
	})

	result := r.db.Delete(&model.User{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete user from database", result.Error, map[string]interface{}{
			"user_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) CountByStatus(status bool) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

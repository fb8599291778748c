package repository

import (
	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

type FavoritoRepository interface {
	Create(favorito *model.ProdutoFavorito) error
	Exists(userID, produtoID uint) (bool, error)
	Delete(userID, produtoID uint) (int64, error)
	FindByUserID(userID uint) ([]model.ProdutoFavorito, error)
}

type favoritoRepository struct {
	db *gorm.DB
}

func NewFavoritoRepository(db *gorm.DB) FavoritoRepository {
	return &favoritoRepository{db: db}
}

func (r *favoritoRepository) Create(favorito *model.ProdutoFavorito) error {
	logger.Debug("Creating favorito in database", map[string]interface{}{
		"user_id":    favorito.UserID,
		"produto_id": favorito.ProdutoID,
	})

	if err := r.db.Omit("Produto").Create(favorito).Error; err != nil {
		logger.Error("Failed to create favorito in database", err, map[string]interface{}{
			"user_id":    favorito.UserID,
			"produto_id": favorito.ProdutoID,
		})
		return err
	}
	return nil
}

func (r *favoritoRepository) Exists(userID, produtoID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProdutoFavorito{}).
		Where("user_id = ? AND produto_id = ?", userID, produtoID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check favorito", err, map[string]interface{}{
			"user_id":    userID,
			"produto_id": produtoID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *favoritoRepository) Delete(userID, produtoID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND produto_id = ?", userID, produtoID).Delete(&model.ProdutoFavorito{})
	if result.Error != nil {
		logger.Error("Failed to delete favorito", result.Error, map[string]interface{}{
			"user_id":    userID,
			"produto_id": produtoID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *favoritoRepository) FindByUserID(userID uint) ([]model.ProdutoFavorito, error) {
	logger.Debug("Finding favoritos by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var favoritos []model.ProdutoFavorito
	err := r.db.Where("user_id = ?", userID).
		Preload("Produto", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Lojista")
		}).
		Order("created_at DESC").
		Find(&favoritos).Error
	if err != nil {
		logger.Error("Failed to find favoritos by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Favoritos found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(favoritos),
	})
	return favoritos, nil
}

package repository

import (
	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrphanImageRepository interface {
	Enqueue(key, reason string) error
	FindBatch(limit int) ([]model.OrphanImage, error)
	Remove(id uint) error
	MarkFailed(id uint, reason string) error
}

type orphanImageRepository struct {
	db *gorm.DB
}

func NewOrphanImageRepository(db *gorm.DB) OrphanImageRepository {
	return &orphanImageRepository{db: db}
}

// Enqueue records key for a later delete; a key already queued is left as is.
func (r *orphanImageRepository) Enqueue(key, reason string) error {
	orphan := &model.OrphanImage{Key: key, LastError: reason}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(orphan).Error
	if err != nil {
		logger.Error("Failed to enqueue orphan image", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}

func (r *orphanImageRepository) FindBatch(limit int) ([]model.OrphanImage, error) {
	var orphans []model.OrphanImage
	if err := r.db.Order("attempts ASC, id ASC").Limit(limit).Find(&orphans).Error; err != nil {
		logger.Error("Failed to load orphan images", err)
		return nil, err
	}
	return orphans, nil
}

func (r *orphanImageRepository) Remove(id uint) error {
	return r.db.Delete(&model.OrphanImage{}, id).Error
}

func (r *orphanImageRepository) MarkFailed(id uint, reason string) error {
	return r.db.Model(&model.OrphanImage{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": reason,
	}).Error
}

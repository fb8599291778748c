package repository

import (
	"errors"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LojistaRepository interface {
	Create(lojista *model.Lojista) error
	BulkCreate(lojistas []model.Lojista, batchSize int) error
	FindByID(id uint) (*model.Lojista, error)
	FindByIDWithAvaliacoes(id uint) (*model.Lojista, error)
	FindByIDForUpdate(id uint) (*model.Lojista, error)
	FindByEmail(email string) (*model.Lojista, error)
	FindAll(filter LojistaFilter) ([]model.Lojista, error)
	FindTopRated(minAvaliacao float64) ([]model.Lojista, error)
	Update(lojista *model.Lojista) error
	UpdateStatus(id uint, status bool) error
	ClearImage(id uint) error
	UpdateRating(id uint, avaliacao float64, numeroAvaliacoes int) error
	Delete(id uint) error
	CountByStatus(status bool) (int64, error)
	Count() (int64, error)
}

type lojistaRepository struct {
	db *gorm.DB
}

func NewLojistaRepository(db *gorm.DB) LojistaRepository {
	return &lojistaRepository{db: db}
}

func (r *lojistaRepository) Create(lojista *model.Lojista) error {
	logger.Debug("Creating lojista in database", map[string]interface{}{
		"email":        lojista.Email,
		"nome_empresa": lojista.NomeEmpresa,
	})

	if err := r.db.Create(lojista).Error; err != nil {
		logger.Error("Failed to create lojista in database", err, map[string]interface{}{
			"email": lojista.Email,
		})
		return err
	}

	logger.Debug("Lojista created in database", map[string]interface{}{
		"lojista_id": lojista.ID,
	})
	return nil
}

// BulkCreate inserts lojistas in batches, used by the spreadsheet importer.
func (r *lojistaRepository) BulkCreate(lojistas []model.Lojista, batchSize int) error {
	logger.Info("Bulk creating lojistas", map[string]interface{}{
		"count":      len(lojistas),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(lojistas, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create lojistas", err)
		return err
	}

	logger.Info("Lojistas bulk created", map[string]interface{}{
		"count": len(lojistas),
	})
	return nil
}

func (r *lojistaRepository) FindByID(id uint) (*model.Lojista, error) {
	return r.findOne(r.db, "id = ?", id)
}

func (r *lojistaRepository) FindByIDWithAvaliacoes(id uint) (*model.Lojista, error) {
	query := r.db.Preload("Avaliacoes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Preload("Usuario")
	})
	return r.findOne(query, "id = ?", id)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
// The SQLite dialect drops the locking clause.
func (r *lojistaRepository) FindByIDForUpdate(id uint) (*model.Lojista, error) {
	return r.findOne(r.db.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *lojistaRepository) FindByEmail(email string) (*model.Lojista, error) {
	return r.findOne(r.db, "email = ?", email)
}

func (r *lojistaRepository) findOne(query *gorm.DB, where string, arg interface{}) (*model.Lojista, error) {
	var lojista model.Lojista
	if err := query.Where(where, arg).First(&lojista).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find lojista", err, map[string]interface{}{
				"where": where,
			})
		}
		return nil, err
	}
	return &lojista, nil
}

func (r *lojistaRepository) FindAll(filter LojistaFilter) ([]model.Lojista, error) {
	logger.Debug("Finding lojistas in database", map[string]interface{}{
		"nome":             filter.Nome,
		"categoria":        filter.Categoria,
		"termo":            filter.Termo,
		"with_coordinates": filter.WithCoordinates,
	})

	var lojistas []model.Lojista
	if err := applyConditions(r.db, filter.Predicate()).Order("id ASC").Find(&lojistas).Error; err != nil {
		logger.Error("Failed to find lojistas in database", err)
		return nil, err
	}

	logger.Debug("Lojistas found in database", map[string]interface{}{
		"count": len(lojistas),
	})
	return lojistas, nil
}

func (r *lojistaRepository) FindTopRated(minAvaliacao float64) ([]model.Lojista, error) {
	filter := LojistaFilter{MinAvaliacao: &minAvaliacao}

	var lojistas []model.Lojista
	err := applyConditions(r.db, filter.Predicate()).
		Order("avaliacao DESC").
		Order("id ASC").
		Find(&lojistas).Error
	if err != nil {
		logger.Error("Failed to find top rated lojistas", err, map[string]interface{}{
			"min_avaliacao": minAvaliacao,
		})
		return nil, err
	}
	return lojistas, nil
}

func (r *lojistaRepository) Update(lojista *model.Lojista) error {
	if err := r.db.Omit(clause.Associations).Save(lojista).Error; err != nil {
		logger.Error("Failed to update lojista in database", err, map[string]interface{}{
			"lojista_id": lojista.ID,
		})
		return err
	}

	logger.Debug("Lojista updated in database", map[string]interface{}{
		"lojista_id": lojista.ID,
	})
	return nil
}

// ClearImage empties the stored image key without touching other columns.
func (r *lojistaRepository) ClearImage(id uint) error {
	err := r.db.Model(&model.Lojista{}).Where("id = ?", id).Update("imagem_lojista", "").Error
	if err != nil {
		logger.Error("Failed to clear lojista image", err, map[string]interface{}{
			"lojista_id": id,
		})
	}
	return err
}

func (r *lojistaRepository) UpdateStatus(id uint, status bool) error {
	result := r.db.Model(&model.Lojista{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update lojista status", result.Error, map[string]interface{}{
			"lojista_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lojistaRepository) UpdateRating(id uint, avaliacao float64, numeroAvaliacoes int) error {
	err := r.db.Model(&model.Lojista{}).Where("id = ?", id).Updates(map[string]interface{}{
		"avaliacao":         avaliacao,
		"numero_avaliacoes": numeroAvaliacoes,
	}).Error
	if err != nil {
		logger.Error("Failed to update lojista rating", err, map[string]interface{}{
			"lojista_id": id,
		})
		return err
	}
	return nil
}

func (r *lojistaRepository) Delete(id uint) error {
	logger.Debug("Deleting lojista from database", map[string]interface{}{
		"lojista_id": id,
	})

	result := r.db.Delete(&model.Lojista{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete lojista from database", result.Error, map[string]interface{}{
			"lojista_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lojistaRepository) CountByStatus(status bool) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lojista{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *lojistaRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Lojista{}).Count(&count).Error
	return count, err
}

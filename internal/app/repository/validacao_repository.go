package repository

import (
	"errors"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

type ValidacaoRepository interface {
	Create(validacao *model.Validacao) error
	FindByID(id uint) (*model.Validacao, error)
	FindByEmail(email string) (*model.Validacao, error)
	FindAll(filter ValidacaoFilter) ([]model.Validacao, error)
	Delete(id uint) error
}

type validacaoRepository struct {
	db *gorm.DB
}

func NewValidacaoRepository(db *gorm.DB) ValidacaoRepository {
	return &validacaoRepository{db: db}
}

func (r *validacaoRepository) Create(validacao *model.Validacao) error {
	logger.Debug("Creating validacao in database", map[string]interface{}{
		"email": validacao.Email,
	})

	if err := r.db.Create(validacao).Error; err != nil {
		logger.Error("Failed to create validacao in database", err, map[string]interface{}{
			"email": validacao.Email,
		})
		return err
	}
	return nil
}

func (r *validacaoRepository) FindByID(id uint) (*model.Validacao, error) {
	var validacao model.Validacao
	if err := r.db.First(&validacao, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find validacao by ID", err, map[string]interface{}{
				"validacao_id": id,
			})
		}
		return nil, err
	}
	return &validacao, nil
}

func (r *validacaoRepository) FindByEmail(email string) (*model.Validacao, error) {
	var validacao model.Validacao
	if err := r.db.Where("email = ?", email).First(&validacao).Error; err != nil {
		return nil, err
	}
	return &validacao, nil
}

func (r *validacaoRepository) FindAll(filter ValidacaoFilter) ([]model.Validacao, error) {
	var validacoes []model.Validacao
	if err := applyConditions(r.db, filter.Predicate()).Order("created_at ASC").Find(&validacoes).Error; err != nil {
		logger.Error("Failed to find validacoes in database", err)
		return nil, err
	}
	return validacoes, nil
}

func (r *validacaoRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Validacao{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete validacao from database", result.Error, map[string]interface{}{
			"validacao_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

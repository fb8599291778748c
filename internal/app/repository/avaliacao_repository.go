package repository

import (
	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

// RatingAggregate is the SUM and COUNT of stored notas for one lojista.
type RatingAggregate struct {
	Soma  int64
	Total int64
}

type AvaliacaoRepository interface {
	Create(avaliacao *model.Avaliacao) error
	FindByLojistaID(lojistaID uint) ([]model.Avaliacao, error)
	AggregateByLojistaID(lojistaID uint) (RatingAggregate, error)
}

type avaliacaoRepository struct {
	db *gorm.DB
}

func NewAvaliacaoRepository(db *gorm.DB) AvaliacaoRepository {
	return &avaliacaoRepository{db: db}
}

func (r *avaliacaoRepository) Create(avaliacao *model.Avaliacao) error {
	logger.Debug("Creating avaliacao in database", map[string]interface{}{
		"lojista_id": avaliacao.LojistaID,
		"usuario_id": avaliacao.UsuarioID,
		"nota":       avaliacao.Nota,
	})

	if err := r.db.Omit("Usuario").Create(avaliacao).Error; err != nil {
		logger.Error("Failed to create avaliacao in database", err, map[string]interface{}{
			"lojista_id": avaliacao.LojistaID,
		})
		return err
	}
	return nil
}

func (r *avaliacaoRepository) FindByLojistaID(lojistaID uint) ([]model.Avaliacao, error) {
	var avaliacoes []model.Avaliacao
	err := r.db.Where("lojista_id = ?", lojistaID).
		Preload("Usuario").
		Order("created_at DESC").
		Find(&avaliacoes).Error
	if err != nil {
		logger.Error("Failed to find avaliacoes by lojista", err, map[string]interface{}{
			"lojista_id": lojistaID,
		})
		return nil, err
	}
	return avaliacoes, nil
}

func (r *avaliacaoRepository) AggregateByLojistaID(lojistaID uint) (RatingAggregate, error) {
	var agg RatingAggregate
	err := r.db.Model(&model.Avaliacao{}).
		Select("COALESCE(SUM(nota), 0) AS soma, COUNT(*) AS total").
		Where("lojista_id = ?", lojistaID).
		Scan(&agg).Error
	if err != nil {
		logger.Error("Failed to aggregate avaliacoes", err, map[string]interface{}{
			"lojista_id": lojistaID,
		})
		return RatingAggregate{}, err
	}
	return agg, nil
}

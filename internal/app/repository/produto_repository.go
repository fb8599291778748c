package repository

import (
	"errors"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProdutoRepository interface {
	Create(produto *model.Produto) error
	FindByID(id uint) (*model.Produto, error)
	FindAll(filter ProdutoFilter) ([]model.Produto, error)
	FindAllWithLojista(filter ProdutoFilter) ([]model.Produto, error)
	Update(produto *model.Produto) error
	Delete(id uint) error
}

type produtoRepository struct {
	db *gorm.DB
}

func NewProdutoRepository(db *gorm.DB) ProdutoRepository {
	return &produtoRepository{db: db}
}

func (r *produtoRepository) Create(produto *model.Produto) error {
	logger.Debug("Creating produto in database", map[string]interface{}{
		"nome":       produto.Nome,
		"id_lojista": produto.IDLojista,
	})

	if err := r.db.Omit(clause.Associations).Create(produto).Error; err != nil {
		logger.Error("Failed to create produto in database", err, map[string]interface{}{
			"id_lojista": produto.IDLojista,
		})
		return err
	}

	logger.Debug("Produto created in database", map[string]interface{}{
		"produto_id": produto.ID,
	})
	return nil
}

func (r *produtoRepository) FindByID(id uint) (*model.Produto, error) {
	var produto model.Produto
	if err := r.db.Preload("Lojista").First(&produto, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find produto by ID", err, map[string]interface{}{
				"produto_id": id,
			})
		}
		return nil, err
	}
	return &produto, nil
}

func (r *produtoRepository) FindAll(filter ProdutoFilter) ([]model.Produto, error) {
	return r.find(r.db, filter)
}

// FindAllWithLojista also loads the owning merchant of every product.
func (r *produtoRepository) FindAllWithLojista(filter ProdutoFilter) ([]model.Produto, error) {
	return r.find(r.db.Preload("Lojista"), filter)
}

func (r *produtoRepository) find(query *gorm.DB, filter ProdutoFilter) ([]model.Produto, error) {
	logger.Debug("Finding produtos in database", map[string]interface{}{
		"nome":       filter.Nome,
		"id_lojista": filter.IDLojista,
	})

	var produtos []model.Produto
	if err := applyConditions(query, filter.Predicate()).Order("id ASC").Find(&produtos).Error; err != nil {
		logger.Error("Failed to find produtos in database", err)
		return nil, err
	}

	logger.Debug("Produtos found in database", map[string]interface{}{
		"count": len(produtos),
	})
	return produtos, nil
}

func (r *produtoRepository) Update(produto *model.Produto) error {
	if err := r.db.Omit(clause.Associations).Save(produto).Error; err != nil {
		logger.Error("Failed to update produto in database", err, map[string]interface{}{
			"produto_id": produto.ID,
		})
		return err
	}
	return nil
}

func (r *produtoRepository) Delete(id uint) error {
	logger.Debug("Deleting produto from database", map[string]interface{}{
		"produto_id": id,
	})

	result := r.db.Delete(&model.Produto{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete produto from database", result.Error, map[string]interface{}{
			"produto_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

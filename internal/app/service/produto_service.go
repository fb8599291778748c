package service

import (
	"errors"
	"strings"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

type ProdutoInput struct {
	Nome          *string
	Descricao     *string
	Preco         *float64
	Categoria     *string
	Subcategoria  *string
	Avaliacao     *float64
	ImagemProduto *string
	IDLojista     *uint
	Status        *bool
}

type ProdutoService interface {
	Create(input ProdutoInput) (*model.Produto, error)
	GetByID(id uint) (*model.Produto, error)
	List(filter repository.ProdutoFilter) ([]model.Produto, error)
	Update(id uint, input ProdutoInput) (*model.Produto, error)
	Delete(id uint) error
}

type produtoService struct {
	produtoRepo repository.ProdutoRepository
	lojistaRepo repository.LojistaRepository
}

func NewProdutoService(produtoRepo repository.ProdutoRepository, lojistaRepo repository.LojistaRepository) ProdutoService {
	return &produtoService{
		produtoRepo: produtoRepo,
		lojistaRepo: lojistaRepo,
	}
}

func (s *produtoService) Create(input ProdutoInput) (*model.Produto, error) {
	if err := validateProdutoInput(input); err != nil {
		return nil, err
	}

	if _, err := s.lojistaRepo.FindByID(*input.IDLojista); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLojistaNotFound
		}
		return nil, err
	}

	produto := &model.Produto{Status: true}
	input.applyTo(produto)

	if err := s.produtoRepo.Create(produto); err != nil {
		return nil, err
	}

	logger.Info("Produto created", map[string]interface{}{
		"produto_id": produto.ID,
		"lojista_id": produto.IDLojista,
	})
	return produto, nil
}

func validateProdutoInput(input ProdutoInput) error {
	var missing []string
	var reqErr *RequiredFieldsError
	if err := requireFields(map[string]*string{
		"nome":      input.Nome,
		"descricao": input.Descricao,
		"categoria": input.Categoria,
	}); errors.As(err, &reqErr) {
		missing = append(missing, reqErr.Fields...)
	}
	if input.Preco == nil {
		missing = append(missing, "preco")
	}
	if input.IDLojista == nil || *input.IDLojista == 0 {
		missing = append(missing, "idLojista")
	}
	if len(missing) > 0 {
		return &RequiredFieldsError{Fields: missing}
	}

	if input.ImagemProduto == nil || strings.TrimSpace(*input.ImagemProduto) == "" {
		return ErrImagemProdutoRequired
	}
	return nil
}

func (s *produtoService) GetByID(id uint) (*model.Produto, error) {
	produto, err := s.produtoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProdutoNotFound
		}
		return nil, err
	}
	return produto, nil
}

func (s *produtoService) List(filter repository.ProdutoFilter) ([]model.Produto, error) {
	return s.produtoRepo.FindAll(filter)
}

func (s *produtoService) Update(id uint, input ProdutoInput) (*model.Produto, error) {
	produto, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.IDLojista != nil && *input.IDLojista != produto.IDLojista {
		if _, err := s.lojistaRepo.FindByID(*input.IDLojista); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLojistaNotFound
			}
			return nil, err
		}
		produto.Lojista = nil
	}

	input.applyTo(produto)

	if err := s.produtoRepo.Update(produto); err != nil {
		return nil, err
	}

	logger.Info("Produto updated", map[string]interface{}{
		"produto_id": produto.ID,
	})
	return produto, nil
}

func (s *produtoService) Delete(id uint) error {
	if err := s.produtoRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProdutoNotFound
		}
		return err
	}

	logger.Info("Produto deleted", map[string]interface{}{
		"produto_id": id,
	})
	return nil
}

func (in ProdutoInput) applyTo(produto *model.Produto) {
	setString(&produto.Nome, in.Nome)
	setString(&produto.Descricao, in.Descricao)
	setString(&produto.Categoria, in.Categoria)
	setString(&produto.Subcategoria, in.Subcategoria)
	setString(&produto.ImagemProduto, in.ImagemProduto)
	if in.Preco != nil {
		produto.Preco = *in.Preco
	}
	if in.Avaliacao != nil {
		produto.Avaliacao = in.Avaliacao
	}
	if in.IDLojista != nil {
		produto.IDLojista = *in.IDLojista
	}
	if in.Status != nil {
		produto.Status = *in.Status
	}
}

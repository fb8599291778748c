package service

import (
	"errors"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

// ProdutoFavoritado is a bookmarked product with its lojista summary.
type ProdutoFavoritado struct {
	model.Produto
	Lojista *model.LojistaResumo `json:"lojista"`
}

type FavoritoService interface {
	Adicionar(userID, produtoID uint) (*model.ProdutoFavorito, error)
	EhFavorito(userID, produtoID uint) (bool, error)
	Remover(userID, produtoID uint) error
	ListarPorUsuario(userID uint) ([]ProdutoFavoritado, error)
}

type favoritoService struct {
	favoritoRepo repository.FavoritoRepository
	userRepo     repository.UserRepository
	produtoRepo  repository.ProdutoRepository
}

func NewFavoritoService(
	favoritoRepo repository.FavoritoRepository,
	userRepo repository.UserRepository,
	produtoRepo repository.ProdutoRepository,
) FavoritoService {
	return &favoritoService{
		favoritoRepo: favoritoRepo,
		userRepo:     userRepo,
		produtoRepo:  produtoRepo,
	}
}

func (s *favoritoService) Adicionar(userID, produtoID uint) (*model.ProdutoFavorito, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	if _, err := s.produtoRepo.FindByID(produtoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProdutoNotFound
		}
		return nil, err
	}

	exists, err := s.favoritoRepo.Exists(userID, produtoID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	favorito := &model.ProdutoFavorito{UserID: userID, ProdutoID: produtoID}
	if err := s.favoritoRepo.Create(favorito); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	logger.Info("Produto added to favoritos", map[string]interface{}{
		"user_id":    userID,
		"produto_id": produtoID,
	})
	return favorito, nil
}

func (s *favoritoService) EhFavorito(userID, produtoID uint) (bool, error) {
	return s.favoritoRepo.Exists(userID, produtoID)
}

func (s *favoritoService) Remover(userID, produtoID uint) error {
	removed, err := s.favoritoRepo.Delete(userID, produtoID)
	if err != nil {
		return err
	}

	logger.Info("Produto removed from favoritos", map[string]interface{}{
		"user_id":    userID,
		"produto_id": produtoID,
		"removed":    removed,
	})
	return nil
}

func (s *favoritoService) ListarPorUsuario(userID uint) ([]ProdutoFavoritado, error) {
	favoritos, err := s.favoritoRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	produtos := make([]ProdutoFavoritado, 0, len(favoritos))
	for _, favorito := range favoritos {
		if favorito.Produto == nil {
			continue
		}
		produto := *favorito.Produto
		resumo := produto.Lojista.Resumo()
		produto.Lojista = nil
		produtos = append(produtos, ProdutoFavoritado{Produto: produto, Lojista: resumo})
	}
	return produtos, nil
}

package service

import (
	"errors"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

// ProdutoSeguido is a product from a followed lojista with the lojista summary.
type ProdutoSeguido struct {
	model.Produto
	Lojista *model.LojistaResumo `json:"lojista"`
}

type FollowService interface {
	Seguir(userID, lojistaID uint) (*model.UserFollowLojista, error)
	DeixarDeSeguir(userID, lojistaID uint) error
	EstaSeguindo(userID, lojistaID uint) (bool, error)
	// ProdutosSeguindo also returns how many lojistas the user follows.
	ProdutosSeguindo(userID uint) ([]ProdutoSeguido, int, error)
	Seguidores(lojistaID uint) ([]model.User, error)
}

type followService struct {
	followRepo  repository.FollowRepository
	userRepo    repository.UserRepository
	lojistaRepo repository.LojistaRepository
	produtoRepo repository.ProdutoRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	lojistaRepo repository.LojistaRepository,
	produtoRepo repository.ProdutoRepository,
) FollowService {
	return &followService{
		followRepo:  followRepo,
		userRepo:    userRepo,
		lojistaRepo: lojistaRepo,
		produtoRepo: produtoRepo,
	}
}

func (s *followService) Seguir(userID, lojistaID uint) (*model.UserFollowLojista, error) {
	if err := s.ensureParticipants(userID, lojistaID); err != nil {
		return nil, err
	}

	exists, err := s.followRepo.Exists(userID, lojistaID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	follow := &model.UserFollowLojista{UserID: userID, LojistaID: lojistaID}
	if err := s.followRepo.Create(follow); err != nil {
		// lost a race against a concurrent follow
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	logger.Info("User followed lojista", map[string]interface{}{
		"user_id":    userID,
		"lojista_id": lojistaID,
	})
	return follow, nil
}

func (s *followService) ensureParticipants(userID, lojistaID uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNotFound
		}
		return err
	}
	if _, err := s.lojistaRepo.FindByID(lojistaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLojistaNotFound
		}
		return err
	}
	return nil
}

func (s *followService) DeixarDeSeguir(userID, lojistaID uint) error {
	removed, err := s.followRepo.Delete(userID, lojistaID)
	if err != nil {
		return err
	}

	logger.Info("User unfollowed lojista", map[string]interface{}{
		"user_id":    userID,
		"lojista_id": lojistaID,
		"removed":    removed,
	})
	return nil
}

func (s *followService) EstaSeguindo(userID, lojistaID uint) (bool, error) {
	return s.followRepo.Exists(userID, lojistaID)
}

// ProdutosSeguindo concatenates the active products of each followed lojista
// in the order the user followed them.
func (s *followService) ProdutosSeguindo(userID uint) ([]ProdutoSeguido, int, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUsuarioNotFound
		}
		return nil, 0, err
	}

	follows, err := s.followRepo.FindByUserID(userID)
	if err != nil {
		return nil, 0, err
	}

	produtos := []ProdutoSeguido{}
	for _, follow := range follows {
		doLojista, err := s.produtoRepo.FindAllWithLojista(repository.ProdutoFilter{
			IDLojista:  follow.LojistaID,
			OnlyActive: true,
		})
		if err != nil {
			return nil, 0, err
		}
		for _, produto := range doLojista {
			resumo := produto.Lojista.Resumo()
			produto.Lojista = nil
			produtos = append(produtos, ProdutoSeguido{Produto: produto, Lojista: resumo})
		}
	}

	return produtos, len(follows), nil
}

func (s *followService) Seguidores(lojistaID uint) ([]model.User, error) {
	return s.followRepo.FindFollowers(lojistaID)
}

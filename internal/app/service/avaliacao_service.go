package service

import (
	"context"
	"errors"
	"math"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"gorm.io/gorm"
)

type AvaliacaoInput struct {
	LojistaID  uint
	UsuarioID  uint
	Nota       int
	Comentario string
}

type AvaliacaoService interface {
	Avaliar(ctx context.Context, input AvaliacaoInput) (*model.Avaliacao, float64, error)
	ListarPorLojista(lojistaID uint) ([]model.Avaliacao, error)
	LojistaComAvaliacoes(lojistaID uint) (*model.Lojista, error)
}

type avaliacaoService struct {
	db            *gorm.DB
	avaliacaoRepo repository.AvaliacaoRepository
	lojistaRepo   repository.LojistaRepository
	userRepo      repository.UserRepository
}

func NewAvaliacaoService(
	db *gorm.DB,
	avaliacaoRepo repository.AvaliacaoRepository,
	lojistaRepo repository.LojistaRepository,
	userRepo repository.UserRepository,
) AvaliacaoService {
	return &avaliacaoService{
		db:            db,
		avaliacaoRepo: avaliacaoRepo,
		lojistaRepo:   lojistaRepo,
		userRepo:      userRepo,
	}
}

// Avaliar stores the rating and recomputes the lojista average while holding
// a row lock on the lojista, so concurrent ratings never overwrite each other.
func (s *avaliacaoService) Avaliar(ctx context.Context, input AvaliacaoInput) (*model.Avaliacao, float64, error) {
	if !model.NotaValida(input.Nota) {
		logger.Warn("Rating rejected: nota out of range", map[string]interface{}{
			"lojista_id": input.LojistaID,
			"nota":       input.Nota,
		})
		return nil, 0, ErrInvalidNota
	}

	if _, err := s.userRepo.FindByID(input.UsuarioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUsuarioNotFound
		}
		return nil, 0, err
	}

	avaliacao := &model.Avaliacao{
		LojistaID:  input.LojistaID,
		UsuarioID:  input.UsuarioID,
		Nota:       input.Nota,
		Comentario: input.Comentario,
	}
	var media float64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lojistaRepo := repository.NewLojistaRepository(tx)
		avaliacaoRepo := repository.NewAvaliacaoRepository(tx)

		if _, err := lojistaRepo.FindByIDForUpdate(input.LojistaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLojistaNotFound
			}
			return err
		}

		if err := avaliacaoRepo.Create(avaliacao); err != nil {
			return err
		}

		agg, err := avaliacaoRepo.AggregateByLojistaID(input.LojistaID)
		if err != nil {
			return err
		}
		media = mediaArredondada(agg)

		return lojistaRepo.UpdateRating(input.LojistaID, media, int(agg.Total))
	})
	if err != nil {
		return nil, 0, err
	}

	logger.Info("Lojista rated", map[string]interface{}{
		"lojista_id": input.LojistaID,
		"usuario_id": input.UsuarioID,
		"nota":       input.Nota,
		"media":      media,
	})
	return avaliacao, media, nil
}

// mediaArredondada is the mean rounded to two decimals.
func mediaArredondada(agg repository.RatingAggregate) float64 {
	if agg.Total == 0 {
		return 0
	}
	return math.Round(float64(agg.Soma)/float64(agg.Total)*100) / 100
}

// ListarPorLojista reads the ratings table directly with the author embedded.
func (s *avaliacaoService) ListarPorLojista(lojistaID uint) ([]model.Avaliacao, error) {
	if _, err := s.lojistaRepo.FindByID(lojistaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLojistaNotFound
		}
		return nil, err
	}
	return s.avaliacaoRepo.FindByLojistaID(lojistaID)
}

// LojistaComAvaliacoes loads the lojista with its ratings included.
func (s *avaliacaoService) LojistaComAvaliacoes(lojistaID uint) (*model.Lojista, error) {
	lojista, err := s.lojistaRepo.FindByIDWithAvaliacoes(lojistaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLojistaNotFound
		}
		return nil, err
	}
	return lojista, nil
}

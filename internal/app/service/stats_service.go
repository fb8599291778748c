package service

import (
	"context"

	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
)

// DocumentCounter counts accounts kept in the document store.
type DocumentCounter interface {
	CountAll(ctx context.Context) (int64, error)
}

type StatusCount struct {
	UsuariosAtivos   int64 `json:"usuariosAtivos"`
	UsuariosInativos int64 `json:"usuariosInativos"`
}

type StatsService interface {
	TotalUsuarios(ctx context.Context) (int64, error)
	ContagemPorStatus() (*StatusCount, error)
}

type statsService struct {
	userRepo    repository.UserRepository
	lojistaRepo repository.LojistaRepository
	counter     DocumentCounter
}

// NewStatsService accepts a nil counter, in which case totals come from the
// relational tables.
func NewStatsService(userRepo repository.UserRepository, lojistaRepo repository.LojistaRepository, counter DocumentCounter) StatsService {
	return &statsService{
		userRepo:    userRepo,
		lojistaRepo: lojistaRepo,
		counter:     counter,
	}
}

func (s *statsService) TotalUsuarios(ctx context.Context) (int64, error) {
	if s.counter != nil {
		total, err := s.counter.CountAll(ctx)
		if err != nil {
			logger.Error("Failed to count documents", err)
			return 0, err
		}
		return total, nil
	}

	usuarios, err := s.userRepo.Count()
	if err != nil {
		return 0, err
	}
	lojistas, err := s.lojistaRepo.Count()
	if err != nil {
		return 0, err
	}
	return usuarios + lojistas, nil
}

// ContagemPorStatus counts users and lojistas together.
func (s *statsService) ContagemPorStatus() (*StatusCount, error) {
	var result StatusCount
	for _, status := range []bool{true, false} {
		usuarios, err := s.userRepo.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		lojistas, err := s.lojistaRepo.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		if status {
			result.UsuariosAtivos = usuarios + lojistas
		} else {
			result.UsuariosInativos = usuarios + lojistas
		}
	}
	return &result, nil
}

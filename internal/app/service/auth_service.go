package service

import (
	"context"
	"errors"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"github.com/AvancyBrasil/API-Find/pkg/util"
	"gorm.io/gorm"
)

// LoginLimiter counts failed logins per identity.
type LoginLimiter interface {
	Blocked(ctx context.Context, identity string) (bool, error)
	Fail(ctx context.Context, identity string) error
	Reset(ctx context.Context, identity string) error
}

// NoopLimiter never blocks. Used when redis is not configured.
type NoopLimiter struct{}

func (NoopLimiter) Blocked(context.Context, string) (bool, error) { return false, nil }
func (NoopLimiter) Fail(context.Context, string) error            { return nil }
func (NoopLimiter) Reset(context.Context, string) error           { return nil }

type AuthService interface {
	LoginUsuario(ctx context.Context, email, senha string) (*model.User, error)
	LoginLojista(ctx context.Context, email, senha string) (*model.Lojista, error)
}

type authService struct {
	userRepo    repository.UserRepository
	lojistaRepo repository.LojistaRepository
	limiter     LoginLimiter
}

func NewAuthService(userRepo repository.UserRepository, lojistaRepo repository.LojistaRepository, limiter LoginLimiter) AuthService {
	if limiter == nil {
		limiter = NoopLimiter{}
	}
	return &authService{
		userRepo:    userRepo,
		lojistaRepo: lojistaRepo,
		limiter:     limiter,
	}
}

// account is the part of User and Lojista that login needs.
type account struct {
	id     uint
	senha  string
	status bool
}

func (s *authService) LoginUsuario(ctx context.Context, email, senha string) (*model.User, error) {
	var user *model.User
	err := s.login(ctx, "usuario:"+normalizeEmail(email), senha, func() (*account, error) {
		found, err := s.userRepo.FindByEmail(normalizeEmail(email))
		if err != nil {
			return nil, err
		}
		user = found
		return &account{id: found.ID, senha: found.Senha, status: found.Status}, nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) LoginLojista(ctx context.Context, email, senha string) (*model.Lojista, error) {
	var lojista *model.Lojista
	err := s.login(ctx, "lojista:"+normalizeEmail(email), senha, func() (*account, error) {
		found, err := s.lojistaRepo.FindByEmail(normalizeEmail(email))
		if err != nil {
			return nil, err
		}
		lojista = found
		return &account{id: found.ID, senha: found.Senha, status: found.Status}, nil
	})
	if err != nil {
		return nil, err
	}
	return lojista, nil
}

func (s *authService) login(ctx context.Context, identity, senha string, lookup func() (*account, error)) error {
	blocked, err := s.limiter.Blocked(ctx, identity)
	if err != nil {
		// limiter outage must not lock everyone out
		logger.Warn("Login limiter unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if blocked {
		logger.Warn("Login blocked: too many attempts", map[string]interface{}{
			"identity": identity,
		})
		return ErrTooManyAttempts
	}

	acc, err := lookup()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: unknown email", map[string]interface{}{
				"identity": identity,
			})
			s.recordFailure(ctx, identity)
			return ErrInvalidCredentials
		}
		return err
	}

	if !util.VerifyPassword(acc.senha, senha) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"identity": identity,
			"id":       acc.id,
		})
		s.recordFailure(ctx, identity)
		return ErrInvalidCredentials
	}

	if !acc.status {
		logger.Warn("Login rejected: account inactive", map[string]interface{}{
			"identity": identity,
			"id":       acc.id,
		})
		return ErrAccountBanned
	}

	if err := s.limiter.Reset(ctx, identity); err != nil {
		logger.Warn("Failed to reset login attempts", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Login succeeded", map[string]interface{}{
		"identity": identity,
		"id":       acc.id,
	})
	return nil
}

func (s *authService) recordFailure(ctx context.Context, identity string) {
	if err := s.limiter.Fail(ctx, identity); err != nil {
		logger.Warn("Failed to record login attempt", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

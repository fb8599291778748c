package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"github.com/AvancyBrasil/API-Find/pkg/util"
	"gorm.io/gorm"
)

// UserInput carries the user form. Nil fields are left untouched on update.
type UserInput struct {
	Nome       *string
	CPF        *string
	DataNasc   *string
	Telefone   *string
	CEP        *string
	Logradouro *string
	Bairro     *string
	Cidade     *string
	Email      *string
	Senha      *string
}

type UserService interface {
	Create(ctx context.Context, input UserInput, foto *ImageUpload) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	List(filter repository.UserFilter) ([]model.User, error)
	Update(ctx context.Context, id uint, input UserInput, foto *ImageUpload) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	SetStatus(id uint, status bool) error
}

type userService struct {
	userRepo repository.UserRepository
	images   ImageService
}

func NewUserService(userRepo repository.UserRepository, images ImageService) UserService {
	return &userService{
		userRepo: userRepo,
		images:   images,
	}
}

func (s *userService) Create(ctx context.Context, input UserInput, foto *ImageUpload) (*model.User, error) {
	if err := requireFields(map[string]*string{
		"nome":  input.Nome,
		"email": input.Email,
		"senha": input.Senha,
	}); err != nil {
		return nil, err
	}

	email := normalizeEmail(*input.Email)
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		logger.Warn("User registration rejected: email in use", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := util.HashPassword(*input.Senha)
	if err != nil {
		logger.Error("Failed to hash user password", err)
		return nil, err
	}

	user := &model.User{Status: true}
	input.applyTo(user)
	user.Email = email
	user.Senha = hashed

	if foto != nil {
		key, err := s.images.Store(ctx, FolderUsuarios, foto)
		if err != nil {
			return nil, err
		}
		user.FotoPerfil = key
	}

	if err := s.userRepo.Create(user); err != nil {
		s.images.Discard(ctx, user.FotoPerfil)
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	logger.Info("User created", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *userService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(filter repository.UserFilter) ([]model.User, error) {
	return s.userRepo.FindAll(filter)
}

// Update applies the non-nil fields of input. A new foto replaces the stored
// one: the old image is discarded before the new upload, and a failed upload
// leaves the user without a foto.
func (s *userService) Update(ctx context.Context, id uint, input UserInput, foto *ImageUpload) (*model.User, error) {
	if err := requirePresentFields(map[string]*string{
		"nome":  input.Nome,
		"email": input.Email,
		"senha": input.Senha,
	}); err != nil {
		return nil, err
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	input.applyTo(user)
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Senha != nil {
		hashed, err := util.HashPassword(*input.Senha)
		if err != nil {
			return nil, err
		}
		user.Senha = hashed
	}

	var newKey string
	if foto != nil {
		oldKey := user.FotoPerfil
		s.images.Discard(ctx, oldKey)
		user.FotoPerfil = ""
		newKey, err = s.images.Store(ctx, FolderUsuarios, foto)
		if err != nil {
			if oldKey != "" {
				// a linha não pode apontar para a imagem já descartada
				_ = s.userRepo.ClearImage(user.ID)
			}
			return nil, err
		}
		user.FotoPerfil = newKey
	}

	if err := s.userRepo.Update(user); err != nil {
		s.images.Discard(ctx, newKey)
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	logger.Info("User updated", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNotFound
		}
		return err
	}
	s.images.Discard(ctx, user.FotoPerfil)

	logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

func (s *userService) SetStatus(id uint, status bool) error {
	if err := s.userRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNotFound
		}
		return err
	}

	logger.Info("User status changed", map[string]interface{}{
		"user_id": id,
		"status":  status,
	})
	return nil
}

func (in UserInput) applyTo(user *model.User) {
	setString(&user.Nome, in.Nome)
	setString(&user.CPF, in.CPF)
	setString(&user.DataNasc, in.DataNasc)
	setString(&user.Telefone, in.Telefone)
	setString(&user.CEP, in.CEP)
	setString(&user.Logradouro, in.Logradouro)
	setString(&user.Bairro, in.Bairro)
	setString(&user.Cidade, in.Cidade)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"github.com/AvancyBrasil/API-Find/pkg/util"
	"gorm.io/gorm"
)

// LojistaInput carries the merchant form. Nil fields are left untouched on update.
type LojistaInput struct {
	Nome                 *string
	Sobrenome            *string
	CPF                  *string
	DataNasc             *string
	NomeEmpresa          *string
	CNPJ                 *string
	CEP                  *string
	Logradouro           *string
	Cidade               *string
	Estado               *string
	NumEstab             *string
	Complemento          *string
	NumContato           *string
	Email                *string
	Senha                *string
	Categoria            *string
	Subcategoria         *string
	HorarioFuncionamento *string
	Descricao            *string
	Biografia            *string
}

func (in LojistaInput) changesAddress() bool {
	return in.Logradouro != nil || in.Cidade != nil || in.Estado != nil
}

type LojistaService interface {
	Create(ctx context.Context, input LojistaInput, imagem *ImageUpload) (*model.Lojista, error)
	GetByID(id uint) (*model.Lojista, error)
	List(filter repository.LojistaFilter) ([]model.Lojista, error)
	Update(ctx context.Context, id uint, input LojistaInput, imagem *ImageUpload) (*model.Lojista, error)
	Delete(ctx context.Context, id uint) error
	SetStatus(id uint, status bool) error
}

type lojistaService struct {
	lojistaRepo repository.LojistaRepository
	images      ImageService
	geocoder    util.Geocoder
}

func NewLojistaService(lojistaRepo repository.LojistaRepository, images ImageService, geocoder util.Geocoder) LojistaService {
	return &lojistaService{
		lojistaRepo: lojistaRepo,
		images:      images,
		geocoder:    geocoder,
	}
}

// Create geocodes the address before uploading so a failed lookup never
// leaves a stored image behind.
func (s *lojistaService) Create(ctx context.Context, input LojistaInput, imagem *ImageUpload) (*model.Lojista, error) {
	if err := requireFields(map[string]*string{
		"nome":       input.Nome,
		"email":      input.Email,
		"senha":      input.Senha,
		"logradouro": input.Logradouro,
		"cidade":     input.Cidade,
	}); err != nil {
		return nil, err
	}

	email := normalizeEmail(*input.Email)
	if _, err := s.lojistaRepo.FindByEmail(email); err == nil {
		logger.Warn("Lojista registration rejected: email in use", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lojista := &model.Lojista{Status: true}
	input.applyTo(lojista)
	lojista.Email = email

	if err := geocodeLojista(ctx, s.geocoder, lojista); err != nil {
		return nil, err
	}

	hashed, err := util.HashPassword(*input.Senha)
	if err != nil {
		logger.Error("Failed to hash lojista password", err)
		return nil, err
	}
	lojista.Senha = hashed

	if imagem != nil {
		key, err := s.images.Store(ctx, FolderLojistas, imagem)
		if err != nil {
			return nil, err
		}
		lojista.ImagemLojista = key
	}

	if err := s.lojistaRepo.Create(lojista); err != nil {
		s.images.Discard(ctx, lojista.ImagemLojista)
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	logger.Info("Lojista created", map[string]interface{}{
		"lojista_id": lojista.ID,
		"email":      lojista.Email,
	})
	return lojista, nil
}

func (s *lojistaService) GetByID(id uint) (*model.Lojista, error) {
	lojista, err := s.lojistaRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLojistaNotFound
		}
		return nil, err
	}
	return lojista, nil
}

func (s *lojistaService) List(filter repository.LojistaFilter) ([]model.Lojista, error) {
	return s.lojistaRepo.FindAll(filter)
}

func (s *lojistaService) Update(ctx context.Context, id uint, input LojistaInput, imagem *ImageUpload) (*model.Lojista, error) {
	if err := requirePresentFields(map[string]*string{
		"nome":       input.Nome,
		"email":      input.Email,
		"senha":      input.Senha,
		"logradouro": input.Logradouro,
		"cidade":     input.Cidade,
	}); err != nil {
		return nil, err
	}

	lojista, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	input.applyTo(lojista)
	if input.Email != nil {
		lojista.Email = normalizeEmail(*input.Email)
	}
	if input.Senha != nil {
		hashed, err := util.HashPassword(*input.Senha)
		if err != nil {
			return nil, err
		}
		lojista.Senha = hashed
	}

	if input.changesAddress() {
		if err := geocodeLojista(ctx, s.geocoder, lojista); err != nil {
			return nil, err
		}
	}

	var newKey string
	if imagem != nil {
		oldKey := lojista.ImagemLojista
		s.images.Discard(ctx, oldKey)
		lojista.ImagemLojista = ""
		newKey, err = s.images.Store(ctx, FolderLojistas, imagem)
		if err != nil {
			if oldKey != "" {
				_ = s.lojistaRepo.ClearImage(lojista.ID)
			}
			return nil, err
		}
		lojista.ImagemLojista = newKey
	}

	if err := s.lojistaRepo.Update(lojista); err != nil {
		s.images.Discard(ctx, newKey)
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	logger.Info("Lojista updated", map[string]interface{}{
		"lojista_id": lojista.ID,
	})
	return lojista, nil
}

func (s *lojistaService) Delete(ctx context.Context, id uint) error {
	lojista, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.lojistaRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLojistaNotFound
		}
		return err
	}
	s.images.Discard(ctx, lojista.ImagemLojista)

	logger.Info("Lojista deleted", map[string]interface{}{
		"lojista_id": id,
	})
	return nil
}

func (s *lojistaService) SetStatus(id uint, status bool) error {
	if err := s.lojistaRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLojistaNotFound
		}
		return err
	}

	logger.Info("Lojista status changed", map[string]interface{}{
		"lojista_id": id,
		"status":     status,
	})
	return nil
}

// geocodeLojista fills the coordinates from "logradouro, cidade, estado".
func geocodeLojista(ctx context.Context, geocoder util.Geocoder, lojista *model.Lojista) error {
	address := util.FormatAddress(lojista.Logradouro, lojista.Cidade, lojista.Estado)
	coords, err := geocoder.Geocode(ctx, address)
	if err != nil {
		logger.Error("Failed to geocode lojista address", err, map[string]interface{}{
			"address": address,
		})
		return fmt.Errorf("%w: %v", ErrGeocodingFailed, err)
	}

	lat, lng := coords.Latitude, coords.Longitude
	lojista.Latitude = &lat
	lojista.Longitude = &lng
	return nil
}

func (in LojistaInput) applyTo(lojista *model.Lojista) {
	setString(&lojista.Nome, in.Nome)
	setString(&lojista.Sobrenome, in.Sobrenome)
	setString(&lojista.CPF, in.CPF)
	setString(&lojista.DataNasc, in.DataNasc)
	setString(&lojista.NomeEmpresa, in.NomeEmpresa)
	setString(&lojista.CNPJ, in.CNPJ)
	setString(&lojista.CEP, in.CEP)
	setString(&lojista.Logradouro, in.Logradouro)
	setString(&lojista.Cidade, in.Cidade)
	setString(&lojista.Estado, in.Estado)
	setString(&lojista.NumEstab, in.NumEstab)
	setString(&lojista.Complemento, in.Complemento)
	setString(&lojista.NumContato, in.NumContato)
	setString(&lojista.Categoria, in.Categoria)
	setString(&lojista.Subcategoria, in.Subcategoria)
	setString(&lojista.HorarioFuncionamento, in.HorarioFuncionamento)
	setString(&lojista.Descricao, in.Descricao)
	setString(&lojista.Biografia, in.Biografia)
}

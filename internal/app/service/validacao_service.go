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

const (
	aprovacaoSubject = "Cadastro aprovado"
	aprovacaoBody    = "Olá %s,\n\nSeu cadastro da loja %s foi aprovado. Você já pode acessar a plataforma com o email %s.\n"
)

type ValidacaoInput struct {
	Nome        *string
	Sobrenome   *string
	CPF         *string
	DataNasc    *string
	NomeEmpresa *string
	CNPJ        *string
	CEP         *string
	Logradouro  *string
	Cidade      *string
	Estado      *string
	NumEstab    *string
	Complemento *string
	NumContato  *string
	Email       *string
	Senha       *string
}

type ValidacaoService interface {
	Create(input ValidacaoInput) (*model.Validacao, error)
	GetByID(id uint) (*model.Validacao, error)
	List(filter repository.ValidacaoFilter) ([]model.Validacao, error)
	Delete(id uint) error
	Aprovar(ctx context.Context, id uint) (*model.Lojista, error)
}

type validacaoService struct {
	db            *gorm.DB
	validacaoRepo repository.ValidacaoRepository
	geocoder      util.Geocoder
	mailer        util.Mailer
}

func NewValidacaoService(db *gorm.DB, validacaoRepo repository.ValidacaoRepository, geocoder util.Geocoder, mailer util.Mailer) ValidacaoService {
	return &validacaoService{
		db:            db,
		validacaoRepo: validacaoRepo,
		geocoder:      geocoder,
		mailer:        mailer,
	}
}

func (s *validacaoService) Create(input ValidacaoInput) (*model.Validacao, error) {
	if err := requireFields(map[string]*string{
		"nome":  input.Nome,
		"email": input.Email,
		"senha": input.Senha,
	}); err != nil {
		return nil, err
	}

	email := normalizeEmail(*input.Email)
	if _, err := s.validacaoRepo.FindByEmail(email); err == nil {
		logger.Warn("Validacao rejected: email in use", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := util.HashPassword(*input.Senha)
	if err != nil {
		return nil, err
	}

	validacao := &model.Validacao{Email: email, Senha: hashed}
	setString(&validacao.Nome, input.Nome)
	setString(&validacao.Sobrenome, input.Sobrenome)
	setString(&validacao.CPF, input.CPF)
	setString(&validacao.DataNasc, input.DataNasc)
	setString(&validacao.NomeEmpresa, input.NomeEmpresa)
	setString(&validacao.CNPJ, input.CNPJ)
	setString(&validacao.CEP, input.CEP)
	setString(&validacao.Logradouro, input.Logradouro)
	setString(&validacao.Cidade, input.Cidade)
	setString(&validacao.Estado, input.Estado)
	setString(&validacao.NumEstab, input.NumEstab)
	setString(&validacao.Complemento, input.Complemento)
	setString(&validacao.NumContato, input.NumContato)

	if err := s.validacaoRepo.Create(validacao); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	logger.Info("Validacao created", map[string]interface{}{
		"validacao_id": validacao.ID,
		"email":        validacao.Email,
	})
	return validacao, nil
}

func (s *validacaoService) GetByID(id uint) (*model.Validacao, error) {
	validacao, err := s.validacaoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidacaoNotFound
		}
		return nil, err
	}
	return validacao, nil
}

func (s *validacaoService) List(filter repository.ValidacaoFilter) ([]model.Validacao, error) {
	return s.validacaoRepo.FindAll(filter)
}

func (s *validacaoService) Delete(id uint) error {
	if err := s.validacaoRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrValidacaoNotFound
		}
		return err
	}

	logger.Info("Validacao deleted", map[string]interface{}{
		"validacao_id": id,
	})
	return nil
}

// Aprovar turns the application into a Lojista. The address is geocoded
// first, then the lojista insert and the application delete commit together.
// The notification email goes out after commit and a send failure does not
// undo the approval.
func (s *validacaoService) Aprovar(ctx context.Context, id uint) (*model.Lojista, error) {
	validacao, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	lojista := &model.Lojista{
		Nome:        validacao.Nome,
		Sobrenome:   validacao.Sobrenome,
		CPF:         validacao.CPF,
		DataNasc:    validacao.DataNasc,
		NomeEmpresa: validacao.NomeEmpresa,
		CNPJ:        validacao.CNPJ,
		CEP:         validacao.CEP,
		Logradouro:  validacao.Logradouro,
		Cidade:      validacao.Cidade,
		Estado:      validacao.Estado,
		NumEstab:    validacao.NumEstab,
		Complemento: validacao.Complemento,
		NumContato:  validacao.NumContato,
		Email:       validacao.Email,
		Senha:       validacao.Senha,
		Status:      true,
	}
	if err := geocodeLojista(ctx, s.geocoder, lojista); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		validacaoRepo := repository.NewValidacaoRepository(tx)
		lojistaRepo := repository.NewLojistaRepository(tx)

		if _, err := lojistaRepo.FindByEmail(validacao.Email); err == nil {
			return ErrEmailAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := lojistaRepo.Create(lojista); err != nil {
			if apperrors.IsUniqueViolation(err) {
				return ErrEmailAlreadyRegistered
			}
			return err
		}

		if err := validacaoRepo.Delete(validacao.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrValidacaoNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		logger.Warn("Validacao approval failed", map[string]interface{}{
			"validacao_id": id,
			"error":        err.Error(),
		})
		return nil, err
	}

	logger.Info("Validacao approved", map[string]interface{}{
		"validacao_id": id,
		"lojista_id":   lojista.ID,
	})

	body := fmt.Sprintf(aprovacaoBody, lojista.Nome, lojista.NomeEmpresa, lojista.Email)
	if err := s.mailer.Send(lojista.Email, aprovacaoSubject, body); err != nil {
		logger.Error("Failed to send approval email", err, map[string]interface{}{
			"lojista_id": lojista.ID,
			"email":      lojista.Email,
		})
	}

	return lojista, nil
}

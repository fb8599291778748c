package controller

import (
	"net/http"

	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/AvancyBrasil/API-Find/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ValidacaoController handles pending lojista registrations and their
// approval.
type ValidacaoController struct {
	validacaoService service.ValidacaoService
	emailService     service.EmailService
}

func NewValidacaoController(validacaoService service.ValidacaoService, emailService service.EmailService) *ValidacaoController {
	return &ValidacaoController{
		validacaoService: validacaoService,
		emailService:     emailService,
	}
}

type ValidacaoRequest struct {
	Nome        *string `form:"nome" json:"nome"`
	Sobrenome   *string `form:"sobrenome" json:"sobrenome"`
	CPF         *string `form:"cpf" json:"cpf"`
	DataNasc    *string `form:"dataNasc" json:"dataNasc"`
	NomeEmpresa *string `form:"nomeEmpresa" json:"nomeEmpresa"`
	CNPJ        *string `form:"cnpj" json:"cnpj"`
	CEP         *string `form:"cep" json:"cep"`
	Logradouro  *string `form:"logradouro" json:"logradouro"`
	Cidade      *string `form:"cidade" json:"cidade"`
	Estado      *string `form:"estado" json:"estado"`
	NumEstab    *string `form:"numEstab" json:"numEstab"`
	Complemento *string `form:"complemento" json:"complemento"`
	NumContato  *string `form:"numContato" json:"numContato"`
	Email       *string `form:"email" json:"email"`
	Senha       *string `form:"senha" json:"senha"`
}

func (r ValidacaoRequest) toInput() service.ValidacaoInput {
	return service.ValidacaoInput{
		Nome:        r.Nome,
		Sobrenome:   r.Sobrenome,
		CPF:         r.CPF,
		DataNasc:    r.DataNasc,
		NomeEmpresa: r.NomeEmpresa,
		CNPJ:        r.CNPJ,
		CEP:         r.CEP,
		Logradouro:  r.Logradouro,
		Cidade:      r.Cidade,
		Estado:      r.Estado,
		NumEstab:    r.NumEstab,
		Complemento: r.Complemento,
		NumContato:  r.NumContato,
		Email:       r.Email,
		Senha:       r.Senha,
	}
}

// List
// GET /validacao
func (ctrl *ValidacaoController) List(c *gin.Context) {
	if rawID := c.Query("id"); rawID != "" {
		id, ok := parseUint(rawID)
		if !ok {
			invalidID(c, rawID)
			return
		}
		ctrl.respondOne(c, id)
		return
	}

	validacoes, err := ctrl.validacaoService.List(repository.ValidacaoFilter{
		Nome:  c.Query("nome"),
		Email: c.Query("email"),
	})
	if err != nil {
		respondServiceError(c, err, "list validacao")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Validações encontradas.",
		"validacoes": validacoes,
		"count":      len(validacoes),
	})
}

// GetByID
// GET /validacao/:id
func (ctrl *ValidacaoController) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctrl.respondOne(c, id)
}

func (ctrl *ValidacaoController) respondOne(c *gin.Context, id uint) {
	validacao, err := ctrl.validacaoService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "get validacao")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Validação encontrada.",
		"validacao": validacao,
	})
}

// Create
// POST /validacao
func (ctrl *ValidacaoController) Create(c *gin.Context) {
	var req ValidacaoRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	validacao, err := ctrl.validacaoService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "create validacao")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Cadastro enviado para validação!",
		"validacao": validacao,
	})
}

// Delete rejects a pending registration
// DELETE /validacao/:id
func (ctrl *ValidacaoController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.validacaoService.Delete(id); err != nil {
		respondServiceError(c, err, "delete validacao")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Validação deletada com sucesso!",
	})
}

// Aprovar promotes the pending registration to a lojista
// POST /validacao/:id/aprovar
func (ctrl *ValidacaoController) Aprovar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	lojista, err := ctrl.validacaoService.Aprovar(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "aprovar validacao")
		return
	}

	log.Info("Validacao approved", map[string]interface{}{
		"validacao_id": id,
		"lojista_id":   lojista.ID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"message": "Lojista aprovado com sucesso!",
		"lojista": lojista,
	})
}

type EmailRequest struct {
	To      string `json:"to" form:"to"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// EmailAprovado sends a free-form notification email
// POST /validacao/emailAprovado
func (ctrl *ValidacaoController) EmailAprovado(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	if err := ctrl.emailService.Send(req.To, req.Subject, req.Message); err != nil {
		respondServiceError(c, err, "enviar email")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email enviado com sucesso.",
	})
}

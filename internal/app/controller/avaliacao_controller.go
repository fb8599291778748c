package controller

import (
	"net/http"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/service"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/gin-gonic/gin"
)

type AvaliacaoController struct {
	avaliacaoService service.AvaliacaoService
}

func NewAvaliacaoController(avaliacaoService service.AvaliacaoService) *AvaliacaoController {
	return &AvaliacaoController{avaliacaoService: avaliacaoService}
}

type AvaliacaoRequest struct {
	LojistaID  *uint   `json:"lojistaId"`
	UsuarioID  *uint   `json:"usuarioId"`
	Nota       *int    `json:"nota"`
	Comentario *string `json:"comentario"`
}

// Avaliar
// POST /avaliar-lojista
func (ctrl *AvaliacaoController) Avaliar(c *gin.Context) {
	var req AvaliacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	if req.LojistaID == nil || req.UsuarioID == nil || req.Nota == nil || *req.LojistaID == 0 || *req.UsuarioID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Lojista, usuário e nota são obrigatórios.")
		return
	}

	input := service.AvaliacaoInput{
		LojistaID: *req.LojistaID,
		UsuarioID: *req.UsuarioID,
		Nota:      *req.Nota,
	}
	if req.Comentario != nil {
		input.Comentario = *req.Comentario
	}

	avaliacao, media, err := ctrl.avaliacaoService.Avaliar(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "avaliar lojista")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Avaliação registrada com sucesso!",
		"novaAvaliacao": avaliacao,
		"novaMedia":     media,
	})
}

// ListarPorLojista reads the ratings table with the author embedded
// GET /avaliacoes/lojista/:id
func (ctrl *AvaliacaoController) ListarPorLojista(c *gin.Context) {
	lojistaID, ok := paramID(c, "id")
	if !ok {
		return
	}

	avaliacoes, err := ctrl.avaliacaoService.ListarPorLojista(lojistaID)
	if err != nil {
		respondServiceError(c, err, "listar avaliacoes")
		return
	}
	respondAvaliacoes(c, len(avaliacoes), avaliacoes)
}

// LojistaComAvaliacoes goes through the lojista with its ratings included
// GET /avaliacoes2/lojista/:lojistaId
func (ctrl *AvaliacaoController) LojistaComAvaliacoes(c *gin.Context) {
	lojistaID, ok := paramID(c, "lojistaId")
	if !ok {
		return
	}

	lojista, err := ctrl.avaliacaoService.LojistaComAvaliacoes(lojistaID)
	if err != nil {
		respondServiceError(c, err, "listar avaliacoes")
		return
	}
	avaliacoes := lojista.Avaliacoes
	if avaliacoes == nil {
		avaliacoes = []model.Avaliacao{}
	}
	respondAvaliacoes(c, len(avaliacoes), avaliacoes)
}

func respondAvaliacoes(c *gin.Context, count int, avaliacoes interface{}) {
	message := "Avaliações encontradas com sucesso!"
	if count == 0 {
		message = "Nenhuma avaliação encontrada para este lojista."
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"avaliacoes": avaliacoes,
		"count":      count,
	})
}

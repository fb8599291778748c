package controller

import (
	"net/http"

	"github.com/AvancyBrasil/API-Find/internal/app/service"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/gin-gonic/gin"
)

type FavoritoController struct {
	favoritoService service.FavoritoService
}

func NewFavoritoController(favoritoService service.FavoritoService) *FavoritoController {
	return &FavoritoController{favoritoService: favoritoService}
}

type FavoritoRequest struct {
	UserID    *uint `json:"userId" form:"userId"`
	ProdutoID *uint `json:"produtoId" form:"produtoId"`
}

// Adicionar
// POST /adicionar-favorito
func (ctrl *FavoritoController) Adicionar(c *gin.Context) {
	var req FavoritoRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}
	if req.UserID == nil || req.ProdutoID == nil || *req.UserID == 0 || *req.ProdutoID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "userId e produtoId são necessários.")
		return
	}

	favorito, err := ctrl.favoritoService.Adicionar(*req.UserID, *req.ProdutoID)
	if err != nil {
		respondServiceError(c, err, "adicionar favorito")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Produto adicionado aos favoritos.",
		"produtoFavorito": favorito,
	})
}

func favoritoParams(c *gin.Context) (uint, uint, bool) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return 0, 0, false
	}
	produtoID, ok := paramID(c, "produtoId")
	if !ok {
		return 0, 0, false
	}
	return userID, produtoID, true
}

// Verificar
// GET /verificar-favorito/:userId/:produtoId
func (ctrl *FavoritoController) Verificar(c *gin.Context) {
	userID, produtoID, ok := favoritoParams(c)
	if !ok {
		return
	}

	favorito, err := ctrl.favoritoService.EhFavorito(userID, produtoID)
	if err != nil {
		respondServiceError(c, err, "verificar favorito")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorito": favorito,
	})
}

// Remover succeeds whether or not the product was a favorite
// DELETE /remover-favorito/:userId/:produtoId
func (ctrl *FavoritoController) Remover(c *gin.Context) {
	userID, produtoID, ok := favoritoParams(c)
	if !ok {
		return
	}

	if err := ctrl.favoritoService.Remover(userID, produtoID); err != nil {
		respondServiceError(c, err, "remover favorito")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto removido dos favoritos.",
	})
}

// ListarPorUsuario
// GET /favoritos/usuario/:id
func (ctrl *FavoritoController) ListarPorUsuario(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	produtos, err := ctrl.favoritoService.ListarPorUsuario(userID)
	if err != nil {
		respondServiceError(c, err, "listar favoritos")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Produtos favoritos encontrados.",
		"produtos": produtos,
		"count":    len(produtos),
	})
}

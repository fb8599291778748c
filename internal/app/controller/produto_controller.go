package controller

import (
	"net/http"

	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/AvancyBrasil/API-Find/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProdutoController struct {
	produtoService service.ProdutoService
}

func NewProdutoController(produtoService service.ProdutoService) *ProdutoController {
	return &ProdutoController{produtoService: produtoService}
}

type ProdutoRequest struct {
	Nome          *string  `json:"nome" form:"nome"`
	Descricao     *string  `json:"descricao" form:"descricao"`
	Preco         *float64 `json:"preco" form:"preco"`
	Categoria     *string  `json:"categoria" form:"categoria"`
	Subcategoria  *string  `json:"subcategoria" form:"subcategoria"`
	Avaliacao     *float64 `json:"avaliacao" form:"avaliacao"`
	ImagemProduto *string  `json:"imagemProduto" form:"imagemProduto"`
	IDLojista     *uint    `json:"idLojista" form:"idLojista"`
	Status        *bool    `json:"status" form:"status"`
}

func (r ProdutoRequest) toInput() service.ProdutoInput {
	return service.ProdutoInput{
		Nome:          r.Nome,
		Descricao:     r.Descricao,
		Preco:         r.Preco,
		Categoria:     r.Categoria,
		Subcategoria:  r.Subcategoria,
		Avaliacao:     r.Avaliacao,
		ImagemProduto: r.ImagemProduto,
		IDLojista:     r.IDLojista,
		Status:        r.Status,
	}
}

// List answers GET /produtos with optional id, nome and idLojista filters.
func (ctrl *ProdutoController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if rawID := c.Query("id"); rawID != "" {
		id, ok := parseUint(rawID)
		if !ok {
			invalidID(c, rawID)
			return
		}
		ctrl.respondOne(c, id)
		return
	}

	filter := repository.ProdutoFilter{Nome: c.Query("nome")}
	if rawLojista := c.Query("idLojista"); rawLojista != "" {
		idLojista, ok := parseUint(rawLojista)
		if !ok {
			invalidID(c, rawLojista)
			return
		}
		filter.IDLojista = idLojista
	}

	produtos, err := ctrl.produtoService.List(filter)
	if err != nil {
		respondServiceError(c, err, "list produtos")
		return
	}

	log.Info("Produtos listed", map[string]interface{}{
		"count": len(produtos),
	})
	c.JSON(http.StatusOK, gin.H{
		"message":  "Produtos encontrados.",
		"produtos": produtos,
		"count":    len(produtos),
	})
}

// GetByID
// GET /produtos/:id
func (ctrl *ProdutoController) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctrl.respondOne(c, id)
}

func (ctrl *ProdutoController) respondOne(c *gin.Context, id uint) {
	produto, err := ctrl.produtoService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "get produto")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Produto encontrado.",
		"produto": produto,
	})
}

// Create
// POST /produtos
func (ctrl *ProdutoController) Create(c *gin.Context) {
	var req ProdutoRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	produto, err := ctrl.produtoService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "create produto")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produto criado com sucesso!",
		"produto": produto,
	})
}

// Update
// PUT /produtos/:id
func (ctrl *ProdutoController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ProdutoRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	produto, err := ctrl.produtoService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "update produto")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto atualizado com sucesso!",
		"produto": produto,
	})
}

// Delete
// DELETE /produtos/:id
func (ctrl *ProdutoController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.produtoService.Delete(id); err != nil {
		respondServiceError(c, err, "delete produto")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto deletado com sucesso!",
	})
}

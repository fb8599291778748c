package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/gin-gonic/gin"
)

type SearchController struct {
	searchService service.SearchService
}

func NewSearchController(searchService service.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// Busca finds lojistas by nome or nomeEmpresa near the caller
// GET /busca?termo=&latitude=&longitude=
func (ctrl *SearchController) Busca(c *gin.Context) {
	origem, ok := requireCoordinates(c)
	if !ok {
		return
	}
	termo := strings.TrimSpace(c.Query("termo"))

	result, err := ctrl.searchService.Buscar(termo, origem)
	if err != nil {
		respondServiceError(c, err, "busca lojistas")
		return
	}

	if result.Candidates == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":  fmt.Sprintf("Nenhum lojista encontrado com o termo \"%s\".", termo),
			"lojistas": []service.LojistaComDistancia{},
			"count":    0,
		})
		return
	}
	respondLojistasComDistancia(c, result, "Lojistas encontrados.")
}

// BuscaProdutos finds products by nome whose lojista is near the caller
// GET /busca-produtos?termo=&latitude=&longitude=
func (ctrl *SearchController) BuscaProdutos(c *gin.Context) {
	origem, ok := requireCoordinates(c)
	if !ok {
		return
	}
	termo := strings.TrimSpace(c.Query("termo"))

	result, err := ctrl.searchService.BuscarProdutos(termo, origem)
	if err != nil {
		respondServiceError(c, err, "busca produtos")
		return
	}

	message := "Produtos encontrados."
	switch {
	case result.Candidates == 0:
		message = fmt.Sprintf("Nenhum produto encontrado com o termo \"%s\".", termo)
	case len(result.Produtos) == 0:
		message = fmt.Sprintf("Nenhum produto encontrado dentro de %s km da sua localização.", formatKm(result.RaioMetros))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"produtos": result.Produtos,
		"count":    len(result.Produtos),
	})
}

// Proximos
// GET /lojistas-proximos?latitude=&longitude=
func (ctrl *SearchController) Proximos(c *gin.Context) {
	origem, ok := requireCoordinates(c)
	if !ok {
		return
	}

	result, err := ctrl.searchService.Proximos(origem)
	if err != nil {
		respondServiceError(c, err, "lojistas proximos")
		return
	}

	if result.Candidates == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Nenhum lojista encontrado.",
			"lojistas": []service.LojistaComDistancia{},
			"count":    0,
		})
		return
	}
	respondLojistasComDistancia(c, result, "Lojistas próximos encontrados.")
}

// MelhorAvaliados lists lojistas rated 4.0 or more, best first, with distance
// but no radius cut.
// GET /lojistas-melhor-avaliados?latitude=&longitude=
func (ctrl *SearchController) MelhorAvaliados(c *gin.Context) {
	origem, ok := requireCoordinates(c)
	if !ok {
		return
	}

	lojistas, err := ctrl.searchService.MelhorAvaliados(origem)
	if err != nil {
		respondServiceError(c, err, "lojistas melhor avaliados")
		return
	}

	message := "Lojistas melhor avaliados encontrados."
	if len(lojistas) == 0 {
		message = "Nenhum lojista encontrado com avaliação igual ou superior a 4.0."
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"lojistas": lojistas,
		"count":    len(lojistas),
	})
}

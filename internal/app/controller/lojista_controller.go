package controller

import (
	"fmt"
	"net/http"

	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/AvancyBrasil/API-Find/internal/middleware"
	"github.com/AvancyBrasil/API-Find/pkg/util"
	"github.com/gin-gonic/gin"
)

type LojistaController struct {
	lojistaService service.LojistaService
	searchService  service.SearchService
}

func NewLojistaController(lojistaService service.LojistaService, searchService service.SearchService) *LojistaController {
	return &LojistaController{
		lojistaService: lojistaService,
		searchService:  searchService,
	}
}

type LojistaRequest struct {
	Nome                 *string `form:"nome" json:"nome"`
	Sobrenome            *string `form:"sobrenome" json:"sobrenome"`
	CPF                  *string `form:"cpf" json:"cpf"`
	DataNasc             *string `form:"dataNasc" json:"dataNasc"`
	NomeEmpresa          *string `form:"nomeEmpresa" json:"nomeEmpresa"`
	CNPJ                 *string `form:"cnpj" json:"cnpj"`
	CEP                  *string `form:"cep" json:"cep"`
	Logradouro           *string `form:"logradouro" json:"logradouro"`
	Cidade               *string `form:"cidade" json:"cidade"`
	Estado               *string `form:"estado" json:"estado"`
	NumEstab             *string `form:"numEstab" json:"numEstab"`
	Complemento          *string `form:"complemento" json:"complemento"`
	NumContato           *string `form:"numContato" json:"numContato"`
	Email                *string `form:"email" json:"email"`
	Senha                *string `form:"senha" json:"senha"`
	Categoria            *string `form:"categoria" json:"categoria"`
	Subcategoria         *string `form:"subcategoria" json:"subcategoria"`
	HorarioFuncionamento *string `form:"horarioFuncionamento" json:"horarioFuncionamento"`
	Descricao            *string `form:"descricao" json:"descricao"`
	Biografia            *string `form:"biografia" json:"biografia"`
}

func (r LojistaRequest) toInput() service.LojistaInput {
	return service.LojistaInput{
		Nome:                 r.Nome,
		Sobrenome:            r.Sobrenome,
		CPF:                  r.CPF,
		DataNasc:             r.DataNasc,
		NomeEmpresa:          r.NomeEmpresa,
		CNPJ:                 r.CNPJ,
		CEP:                  r.CEP,
		Logradouro:           r.Logradouro,
		Cidade:               r.Cidade,
		Estado:               r.Estado,
		NumEstab:             r.NumEstab,
		Complemento:          r.Complemento,
		NumContato:           r.NumContato,
		Email:                r.Email,
		Senha:                r.Senha,
		Categoria:            r.Categoria,
		Subcategoria:         r.Subcategoria,
		HorarioFuncionamento: r.HorarioFuncionamento,
		Descricao:            r.Descricao,
		Biografia:            r.Biografia,
	}
}

// Create registers a lojista, geocoding its address
// POST /lojistas
func (ctrl *LojistaController) Create(c *gin.Context) {
	var req LojistaRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	imagem, closer, err := formImage(c, "imagemLojista")
	if err != nil {
		invalidBody(c, err)
		return
	}
	defer closeQuietly(closer)

	lojista, err := ctrl.lojistaService.Create(c.Request.Context(), req.toInput(), imagem)
	if err != nil {
		respondServiceError(c, err, "create lojista")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Lojista criado com sucesso!",
		"lojista": lojista,
	})
}

// List answers GET /lojistas. ?id selects one lojista; latitude and
// longitude add distances and, for lists, restrict to the search radius.
func (ctrl *LojistaController) List(c *gin.Context) {
	origem, hasOrigem, err := queryCoordinates(c)
	if err != nil {
		badCoordinates(c)
		return
	}

	if rawID := c.Query("id"); rawID != "" {
		id, ok := parseUint(rawID)
		if !ok {
			invalidID(c, rawID)
			return
		}
		ctrl.respondOne(c, id, origem, hasOrigem)
		return
	}

	filter := repository.LojistaFilter{
		Nome:      c.Query("nome"),
		Email:     c.Query("email"),
		Categoria: c.Query("categoria"),
	}

	if !hasOrigem {
		lojistas, err := ctrl.lojistaService.List(filter)
		if err != nil {
			respondServiceError(c, err, "list lojistas")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Lojistas encontrados.",
			"lojistas": lojistas,
			"count":    len(lojistas),
		})
		return
	}

	result, err := ctrl.searchService.LojistasNoRaio(filter, origem)
	if err != nil {
		respondServiceError(c, err, "list lojistas")
		return
	}
	respondLojistasComDistancia(c, result, "Lojistas encontrados.")
}

// GetByID
// GET /lojistas/:id
func (ctrl *LojistaController) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	origem, hasOrigem, err := queryCoordinates(c)
	if err != nil {
		badCoordinates(c)
		return
	}
	ctrl.respondOne(c, id, origem, hasOrigem)
}

func (ctrl *LojistaController) respondOne(c *gin.Context, id uint, origem service.Point, hasOrigem bool) {
	lojista, err := ctrl.lojistaService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "get lojista")
		return
	}

	var body interface{} = lojista
	if hasOrigem {
		if d, ok := service.DistanciaAte(lojista, origem); ok {
			body = lojistaComDistancia(lojista, d)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lojista encontrado.",
		"lojista": body,
	})
}

func lojistaComDistancia(lojista *model.Lojista, d int) service.LojistaComDistancia {
	return service.LojistaComDistancia{
		Lojista:            *lojista,
		Distancia:          d,
		DistanciaFormatada: util.FormatDistance(d),
	}
}

// respondLojistasComDistancia answers radius searches. An empty result is
// still 200, with a message saying why.
func respondLojistasComDistancia(c *gin.Context, result *service.LojistaSearchResult, found string) {
	log := middleware.GetLoggerFromContext(c)
	log.Info("Radius search answered", map[string]interface{}{
		"candidates": result.Candidates,
		"found":      len(result.Lojistas),
		"raio":       result.RaioMetros,
	})

	message := found
	if len(result.Lojistas) == 0 {
		message = fmt.Sprintf("Nenhum lojista encontrado dentro de %s km da sua localização.", formatKm(result.RaioMetros))
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"lojistas": result.Lojistas,
		"count":    len(result.Lojistas),
	})
}

// formatKm prints whole kilometers without decimals.
func formatKm(meters int) string {
	if meters%1000 == 0 {
		return fmt.Sprintf("%d", meters/1000)
	}
	return fmt.Sprintf("%.1f", float64(meters)/1000)
}

// Update
// PUT /lojistas/:id
func (ctrl *LojistaController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req LojistaRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	imagem, closer, err := formImage(c, "imagemLojista")
	if err != nil {
		invalidBody(c, err)
		return
	}
	defer closeQuietly(closer)

	lojista, err := ctrl.lojistaService.Update(c.Request.Context(), id, req.toInput(), imagem)
	if err != nil {
		respondServiceError(c, err, "update lojista")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lojista atualizado com sucesso!",
		"lojista": lojista,
	})
}

// Delete
// DELETE /lojistas/:id
func (ctrl *LojistaController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.lojistaService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete lojista")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lojista deletado com sucesso!",
	})
}

// Banir
// PUT /lojistas/:id/banir
func (ctrl *LojistaController) Banir(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	status, ok := bindStatus(c)
	if !ok {
		return
	}

	if err := ctrl.lojistaService.SetStatus(id, status); err != nil {
		respondServiceError(c, err, "ban lojista")
		return
	}

	message := "Lojista banido com sucesso!"
	if status {
		message = "Lojista ativado com sucesso!"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"status":  status,
	})
}

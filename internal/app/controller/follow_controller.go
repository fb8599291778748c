package controller

import (
	"net/http"

	"github.com/AvancyBrasil/API-Find/internal/app/service"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/gin-gonic/gin"
)

type FollowController struct {
	followService service.FollowService
}

func NewFollowController(followService service.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

type FollowRequest struct {
	UserID    *uint `json:"userId" form:"userId"`
	LojistaID *uint `json:"lojistaId" form:"lojistaId"`
}

func (r FollowRequest) ids() (uint, uint, bool) {
	if r.UserID == nil || r.LojistaID == nil || *r.UserID == 0 || *r.LojistaID == 0 {
		return 0, 0, false
	}
	return *r.UserID, *r.LojistaID, true
}

func missingFollowIDs(c *gin.Context) {
	apperrors.BadRequest(c, apperrors.ValidationRequired, "userId e lojistaId são obrigatórios.")
}

// Seguir
// POST /seguir
func (ctrl *FollowController) Seguir(c *gin.Context) {
	var req FollowRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}
	userID, lojistaID, ok := req.ids()
	if !ok {
		missingFollowIDs(c)
		return
	}

	follow, err := ctrl.followService.Seguir(userID, lojistaID)
	if err != nil {
		respondServiceError(c, err, "seguir lojista")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Lojista seguido com sucesso!",
		"follow":  follow,
	})
}

// DeixarDeSeguir succeeds whether or not the follow existed
// DELETE /deixar-seguir
func (ctrl *FollowController) DeixarDeSeguir(c *gin.Context) {
	var req FollowRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}
	userID, lojistaID, ok := req.ids()
	if !ok {
		missingFollowIDs(c)
		return
	}

	if err := ctrl.followService.DeixarDeSeguir(userID, lojistaID); err != nil {
		respondServiceError(c, err, "deixar de seguir")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Você deixou de seguir o lojista com sucesso!",
	})
}

// VerificarSeguindo
// GET /verificar-seguindo?userId=&lojistaId=
func (ctrl *FollowController) VerificarSeguindo(c *gin.Context) {
	userID, okUser := parseUint(c.Query("userId"))
	lojistaID, okLojista := parseUint(c.Query("lojistaId"))
	if !okUser || !okLojista {
		missingFollowIDs(c)
		return
	}

	seguindo, err := ctrl.followService.EstaSeguindo(userID, lojistaID)
	if err != nil {
		respondServiceError(c, err, "verificar seguindo")
		return
	}

	message := "Você ainda não está seguindo este lojista."
	if seguindo {
		message = "Você já está seguindo este lojista."
	}
	c.JSON(http.StatusOK, gin.H{
		"isFollowing": seguindo,
		"message":     message,
	})
}

// ProdutosSeguindo lists the active products of every lojista the user follows
// GET /produtos-seguindo?userId=
func (ctrl *FollowController) ProdutosSeguindo(c *gin.Context) {
	userID, ok := parseUint(c.Query("userId"))
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "userId é obrigatório.")
		return
	}

	produtos, seguindo, err := ctrl.followService.ProdutosSeguindo(userID)
	if err != nil {
		respondServiceError(c, err, "produtos seguindo")
		return
	}

	message := "Produtos dos lojistas que você segue."
	switch {
	case seguindo == 0:
		message = "Você não está seguindo nenhum lojista."
	case len(produtos) == 0:
		message = "Não há produtos disponíveis dos lojistas que você segue."
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"produtos": produtos,
	})
}

// Seguidores
// GET /lojista/:lojistaId/seguidores
func (ctrl *FollowController) Seguidores(c *gin.Context) {
	lojistaID, ok := paramID(c, "lojistaId")
	if !ok {
		return
	}

	followers, err := ctrl.followService.Seguidores(lojistaID)
	if err != nil {
		respondServiceError(c, err, "seguidores")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Seguidores encontrados.",
		"followersCount": len(followers),
		"followers":      followers,
	})
}

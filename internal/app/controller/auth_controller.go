package controller

import (
	"net/http"

	"github.com/AvancyBrasil/API-Find/internal/app/service"
	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type LoginRequest struct {
	Email string `json:"email" form:"email"`
	Senha string `json:"senha" form:"senha"`
}

func bindLogin(c *gin.Context) (LoginRequest, bool) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return req, false
	}
	if req.Email == "" || req.Senha == "" {
		apperrors.RespondWithValidationError(c, "Email e senha são obrigatórios.", map[string]string{
			"email": "obrigatório",
			"senha": "obrigatório",
		})
		return req, false
	}
	return req, true
}

// LoginUsuario
// POST /login/usuarios
func (ctrl *AuthController) LoginUsuario(c *gin.Context) {
	req, ok := bindLogin(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.LoginUsuario(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		respondServiceError(c, err, "login usuario")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso!",
		"usuario": user,
	})
}

// LoginLojista
// POST /login/lojistas
func (ctrl *AuthController) LoginLojista(c *gin.Context) {
	req, ok := bindLogin(c)
	if !ok {
		return
	}

	lojista, err := ctrl.authService.LoginLojista(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		respondServiceError(c, err, "login lojista")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso!",
		"lojista": lojista,
	})
}

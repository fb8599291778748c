package controller

import (
	"net/http"

	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/AvancyBrasil/API-Find/internal/middleware"
	"github.com/gin-gonic/gin"
)

type UsuarioController struct {
	userService service.UserService
}

func NewUsuarioController(userService service.UserService) *UsuarioController {
	return &UsuarioController{userService: userService}
}

// UsuarioRequest is accepted as multipart form or JSON. Absent fields stay nil.
type UsuarioRequest struct {
	Nome       *string `form:"nome" json:"nome"`
	CPF        *string `form:"cpf" json:"cpf"`
	DataNasc   *string `form:"dataNasc" json:"dataNasc"`
	Telefone   *string `form:"telefone" json:"telefone"`
	CEP        *string `form:"cep" json:"cep"`
	Logradouro *string `form:"logradouro" json:"logradouro"`
	Bairro     *string `form:"bairro" json:"bairro"`
	Cidade     *string `form:"cidade" json:"cidade"`
	Email      *string `form:"email" json:"email"`
	Senha      *string `form:"senha" json:"senha"`
}

func (r UsuarioRequest) toInput() service.UserInput {
	return service.UserInput{
		Nome:       r.Nome,
		CPF:        r.CPF,
		DataNasc:   r.DataNasc,
		Telefone:   r.Telefone,
		CEP:        r.CEP,
		Logradouro: r.Logradouro,
		Bairro:     r.Bairro,
		Cidade:     r.Cidade,
		Email:      r.Email,
		Senha:      r.Senha,
	}
}

// Create registers a user with an optional fotoPerfil
// POST /usuarios
func (ctrl *UsuarioController) Create(c *gin.Context) {
	var req UsuarioRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	foto, closer, err := formImage(c, "fotoPerfil")
	if err != nil {
		invalidBody(c, err)
		return
	}
	defer closeQuietly(closer)

	user, err := ctrl.userService.Create(c.Request.Context(), req.toInput(), foto)
	if err != nil {
		respondServiceError(c, err, "create usuario")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuário criado com sucesso!",
		"usuario": user,
	})
}

// List answers GET /usuarios. With ?id it returns that single user.
func (ctrl *UsuarioController) List(c *gin.Context) {
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

	users, err := ctrl.userService.List(repository.UserFilter{
		Nome:  c.Query("nome"),
		Email: c.Query("email"),
	})
	if err != nil {
		respondServiceError(c, err, "list usuarios")
		return
	}

	log.Info("Usuarios listed", map[string]interface{}{
		"count": len(users),
	})
	c.JSON(http.StatusOK, gin.H{
		"message":  "Usuários encontrados.",
		"usuarios": users,
		"count":    len(users),
	})
}

// GetByID
// GET /usuarios/:id
func (ctrl *UsuarioController) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctrl.respondOne(c, id)
}

func (ctrl *UsuarioController) respondOne(c *gin.Context, id uint) {
	user, err := ctrl.userService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "get usuario")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Usuário encontrado.",
		"usuario": user,
	})
}

// Update
// PUT /usuarios/:id
func (ctrl *UsuarioController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UsuarioRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}

	foto, closer, err := formImage(c, "fotoPerfil")
	if err != nil {
		invalidBody(c, err)
		return
	}
	defer closeQuietly(closer)

	user, err := ctrl.userService.Update(c.Request.Context(), id, req.toInput(), foto)
	if err != nil {
		respondServiceError(c, err, "update usuario")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Usuário atualizado com sucesso!",
		"usuario": user,
	})
}

// Delete
// DELETE /usuarios/:id
func (ctrl *UsuarioController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.userService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete usuario")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Usuário deletado com sucesso!",
	})
}

// Banir sets the account status from {"status": bool}
// PUT /usuarios/:id/banir
func (ctrl *UsuarioController) Banir(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	status, ok := bindStatus(c)
	if !ok {
		return
	}

	if err := ctrl.userService.SetStatus(id, status); err != nil {
		respondServiceError(c, err, "ban usuario")
		return
	}

	message := "Usuário banido com sucesso!"
	if status {
		message = "Usuário ativado com sucesso!"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"status":  status,
	})
}

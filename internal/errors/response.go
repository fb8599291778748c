package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error   string `json:"error"`   // código para o front-end
	Message string `json:"message"` // mensagem em português
}

func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Email ou senha incorretos!"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthInvalidCredentials, message)
}

func Forbidden(c *gin.Context, message string) {
	RespondWithError(c, http.StatusForbidden, AuthAccountBanned, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "Muitas tentativas de login. Tente novamente mais tarde."
	}
	RespondWithError(c, http.StatusTooManyRequests, AuthTooManyAttempts, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Erro interno do servidor."
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// InvalidID is the shared response for path or query ids that do not parse.
func InvalidID(c *gin.Context) {
	RespondWithError(c, http.StatusBadRequest, ValidationInvalidID, "ID inválido.")
}

// ValidationError carries per-field messages
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, message string, fields map[string]string) {
	if message == "" {
		message = "Dados inválidos."
	}
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationRequired,
		Message: message,
		Fields:  fields,
	})
}

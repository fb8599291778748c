package controller

import (
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validacaoBody(email string) map[string]string {
	return map[string]string{
		"nome":        "Davi",
		"nomeEmpresa": "Mercadinho do Davi",
		"email":       email,
		"senha":       "senha123",
		"logradouro":  "Rua das Flores, 10",
		"cidade":      "Curitiba",
		"estado":      "PR",
	}
}

func TestValidacaoController_CreateAndList(t *testing.T) {
	ts := setupTestServer(t, nil)

	w := ts.do(http.MethodPost, "/validacao", validacaoBody("davi@example.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["validacao"].(map[string]interface{})["id"].(float64)

	w = ts.do(http.MethodPost, "/validacao", validacaoBody("davi@example.com"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Esse email já está cadastrado.", decode(t, w)["message"])

	w = ts.do(http.MethodGet, "/validacao?email=davi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = ts.do(http.MethodGet, urlf("/validacao/%d", uint(id)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decode(t, w)["validacao"], "senha")

	w = ts.do(http.MethodDelete, urlf("/validacao/%d", uint(id)), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodDelete, urlf("/validacao/%d", uint(id)), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ValidacaoNotFound, decode(t, w)["error"])
}

func TestValidacaoController_Aprovar(t *testing.T) {
	ts := setupTestServer(t, nil)

	w := ts.do(http.MethodPost, "/validacao", validacaoBody("davi@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode(t, w)["validacao"].(map[string]interface{})["id"].(float64))

	w = ts.do(http.MethodPost, urlf("/validacao/%d/aprovar", id), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	lojista := decode(t, w)["lojista"].(map[string]interface{})
	assert.Equal(t, "davi@example.com", lojista["email"])
	assert.Equal(t, -23.5, lojista["latitude"])
	assert.Equal(t, []string{"davi@example.com"}, ts.mailer.to)

	// the approved lojista logs in with the password from the application
	w = ts.do(http.MethodPost, "/login/lojistas", map[string]string{
		"email": "davi@example.com",
		"senha": "senha123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, urlf("/validacao/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidacaoController_Aprovar_GeocodeFailureKeepsApplication(t *testing.T) {
	ts := setupTestServer(t, nil)

	w := ts.do(http.MethodPost, "/validacao", validacaoBody("davi@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode(t, w)["validacao"].(map[string]interface{})["id"].(float64))

	ts.geocoder.err = errors.New("opencage down")
	w = ts.do(http.MethodPost, urlf("/validacao/%d/aprovar", id), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = ts.do(http.MethodGet, urlf("/validacao/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidacaoController_EmailAprovado(t *testing.T) {
	ts := setupTestServer(t, nil)

	w := ts.do(http.MethodPost, "/validacao/emailAprovado", map[string]string{
		"to":      "loja@example.com",
		"subject": "Cadastro aprovado",
		"message": "Bem-vindo!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Email enviado com sucesso.", decode(t, w)["message"])
	assert.Equal(t, []string{"loja@example.com"}, ts.mailer.to)

	w = ts.do(http.MethodPost, "/validacao/emailAprovado", map[string]string{"to": "loja@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/validacao/emailAprovado", map[string]string{
		"to":      "loja@example.com",
		"subject": "Aprovado\r\nBcc: todos@example.com",
		"message": "m",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ValidationInvalidInput, decode(t, w)["error"])
	assert.Len(t, ts.mailer.to, 1)

	ts.mailer.err = errors.New("smtp down")
	w = ts.do(http.MethodPost, "/validacao/emailAprovado", map[string]string{
		"to": "loja@example.com", "subject": "s", "message": "m",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperrors.InternalMailError, decode(t, w)["error"])
}

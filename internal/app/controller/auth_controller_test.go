package controller

import (
	"net/http"
	"testing"

	apperrors "github.com/AvancyBrasil/API-Find/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_LoginUsuario(t *testing.T) {
	ts := setupTestServer(t, nil)
	ts.seedUser(t, "Ana", "ana@example.com", true)
	ts.seedUser(t, "Banido", "banido@example.com", false)

	tests := []struct {
		name       string
		email      string
		senha      string
		wantStatus int
		wantCode   string
	}{
		{"active account", "ana@example.com", "senha123", http.StatusOK, ""},
		{"email is case insensitive", "ANA@example.com", "senha123", http.StatusOK, ""},
		{"wrong password", "ana@example.com", "errada", http.StatusUnauthorized, apperrors.AuthInvalidCredentials},
		{"unknown email", "ninguem@example.com", "senha123", http.StatusUnauthorized, apperrors.AuthInvalidCredentials},
		{"banned account", "banido@example.com", "senha123", http.StatusForbidden, apperrors.AuthAccountBanned},
		{"missing senha", "ana@example.com", "", http.StatusBadRequest, apperrors.ValidationRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPost, "/login/usuarios", map[string]string{
				"email": tt.email,
				"senha": tt.senha,
			})

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			response := decode(t, w)
			if tt.wantCode == "" {
				assert.Contains(t, response, "usuario")
				return
			}
			assert.Equal(t, tt.wantCode, response["error"])
		})
	}
}

func TestAuthController_WrongCredentialsShareMessage(t *testing.T) {
	ts := setupTestServer(t, nil)
	ts.seedUser(t, "Ana", "ana@example.com", true)

	wrongPassword := decode(t, ts.do(http.MethodPost, "/login/usuarios", map[string]string{
		"email": "ana@example.com", "senha": "errada",
	}))
	unknownEmail := decode(t, ts.do(http.MethodPost, "/login/usuarios", map[string]string{
		"email": "x@example.com", "senha": "errada",
	}))

	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, "Email ou senha incorretos!", wrongPassword["message"])
}

func TestAuthController_LoginLojista(t *testing.T) {
	ts := setupTestServer(t, nil)
	lojista := ts.seedLojista(t, "Padaria", "padaria@example.com", -23.5, -46.6)

	w := ts.do(http.MethodPost, "/login/lojistas", map[string]string{
		"email": "padaria@example.com",
		"senha": "senha123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)["lojista"].(map[string]interface{})
	assert.Equal(t, float64(lojista.ID), body["id"])

	require.NoError(t, ts.lojistaRepo.UpdateStatus(lojista.ID, false))
	w = ts.do(http.MethodPost, "/login/lojistas", map[string]string{
		"email": "padaria@example.com",
		"senha": "senha123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsController_TotalFromRelationalTables(t *testing.T) {
	ts := setupTestServer(t, nil)
	ts.seedUser(t, "Ana", "ana@example.com", true)
	ts.seedUser(t, "Bia", "bia@example.com", false)
	ts.seedLojista(t, "Loja", "loja@example.com", -23.5, -46.6)

	w := ts.do(http.MethodGet, "/usuariosTotal", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestStatsController_TotalFromDocumentStore(t *testing.T) {
	ts := setupTestServer(t, stubCounter{total: 42})

	w := ts.do(http.MethodGet, "/usuariosTotal", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
}

func TestStatsController_Status(t *testing.T) {
	ts := setupTestServer(t, nil)
	ts.seedUser(t, "Ana", "ana@example.com", true)
	ts.seedUser(t, "Bia", "bia@example.com", false)
	lojista := ts.seedLojista(t, "Loja", "loja@example.com", -23.5, -46.6)
	require.NoError(t, ts.lojistaRepo.UpdateStatus(lojista.ID, false))

	w := ts.do(http.MethodGet, "/usuariosStatus", nil)

	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(1), response["usuariosAtivos"])
	assert.Equal(t, float64(2), response["usuariosInativos"])
}

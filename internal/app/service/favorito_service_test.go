package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritoService_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	favoritoService := NewFavoritoService(env.favoritoRepo, env.userRepo, env.produtoRepo)

	user := env.createUser(t, "Cliente", "cliente@example.com", true)
	lojista := env.createLojista(t, "Doceria", "doceria@example.com", nil, nil)
	produto := env.createProduto(t, lojista.ID, "Brigadeiro", true)

	favorito, err := favoritoService.Adicionar(user.ID, produto.ID)
	require.NoError(t, err)
	assert.NotZero(t, favorito.ID)

	_, err = favoritoService.Adicionar(user.ID, produto.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)

	ok, err := favoritoService.EhFavorito(user.ID, produto.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	produtos, err := favoritoService.ListarPorUsuario(user.ID)
	require.NoError(t, err)
	require.Len(t, produtos, 1)
	assert.Equal(t, "Brigadeiro", produtos[0].Nome)
	require.NotNil(t, produtos[0].Lojista)
	assert.Equal(t, "Doceria", produtos[0].Lojista.NomeEmpresa)

	require.NoError(t, favoritoService.Remover(user.ID, produto.ID))
	ok, err = favoritoService.EhFavorito(user.ID, produto.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	produtos, err = favoritoService.ListarPorUsuario(user.ID)
	require.NoError(t, err)
	assert.Empty(t, produtos)
}

func TestFavoritoService_AdicionarUnknown(t *testing.T) {
	env := newTestEnv(t)
	favoritoService := NewFavoritoService(env.favoritoRepo, env.userRepo, env.produtoRepo)

	user := env.createUser(t, "Cliente", "cliente@example.com", true)

	_, err := favoritoService.Adicionar(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProdutoNotFound)

	_, err = favoritoService.Adicionar(9999, 1)
	assert.ErrorIs(t, err, ErrUsuarioNotFound)
}

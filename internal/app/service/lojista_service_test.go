package service

import (
	"context"
	"testing"

	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLojistaServiceTest(t *testing.T) (LojistaService, *testEnv) {
	env := newTestEnv(t)
	return NewLojistaService(env.lojistaRepo, env.images, env.geocoder), env
}

func validLojistaInput(email string) LojistaInput {
	return LojistaInput{
		Nome:        strPtr("Paulo"),
		NomeEmpresa: strPtr("Padaria Central"),
		Email:       strPtr(email),
		Senha:       strPtr("senha123"),
		Logradouro:  strPtr("Av. Paulista, 1000"),
		Cidade:      strPtr("São Paulo"),
		Estado:      strPtr("SP"),
		Categoria:   strPtr("Alimentação"),
	}
}

func TestLojistaService_CreateGeocodesAddress(t *testing.T) {
	lojistaService, env := setupLojistaServiceTest(t)

	lojista, err := lojistaService.Create(context.Background(), validLojistaInput("padaria@example.com"), pngUpload("loja.png"))
	require.NoError(t, err)

	require.True(t, lojista.HasCoordinates())
	assert.InDelta(t, -23.5505, *lojista.Latitude, 1e-9)
	assert.InDelta(t, -46.6333, *lojista.Longitude, 1e-9)
	assert.Equal(t, []string{"Av. Paulista, 1000, São Paulo, SP"}, env.geocoder.queries)
	assert.True(t, util.VerifyPassword(lojista.Senha, "senha123"))
	assert.Contains(t, env.store.objects, lojista.ImagemLojista)
}

func TestLojistaService_CreateRejections(t *testing.T) {
	lojistaService, env := setupLojistaServiceTest(t)
	ctx := context.Background()

	t.Run("Missing address", func(t *testing.T) {
		input := validLojistaInput("semendereco@example.com")
		input.Logradouro = nil
		input.Cidade = strPtr("  ")

		_, err := lojistaService.Create(ctx, input, nil)
		var reqErr *RequiredFieldsError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, []string{"cidade", "logradouro"}, reqErr.Fields)
	})

	t.Run("Geocoding failure uploads nothing", func(t *testing.T) {
		env.geocoder.err = util.ErrNoGeocodeResults
		defer func() { env.geocoder.err = nil }()

		_, err := lojistaService.Create(ctx, validLojistaInput("geo@example.com"), pngUpload("loja.png"))
		assert.ErrorIs(t, err, ErrGeocodingFailed)
		assert.Empty(t, env.store.objects)

		lojistas, err := lojistaService.List(repository.LojistaFilter{})
		require.NoError(t, err)
		assert.Empty(t, lojistas)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := lojistaService.Create(ctx, validLojistaInput("dup@example.com"), nil)
		require.NoError(t, err)

		_, err = lojistaService.Create(ctx, validLojistaInput("DUP@example.com"), nil)
		assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	})
}

func TestLojistaService_UpdateRegeocodesOnAddressChange(t *testing.T) {
	lojistaService, env := setupLojistaServiceTest(t)
	ctx := context.Background()

	lojista, err := lojistaService.Create(ctx, validLojistaInput("mercado@example.com"), nil)
	require.NoError(t, err)

	updated, err := lojistaService.Update(ctx, lojista.ID, LojistaInput{Descricao: strPtr("Pães artesanais")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pães artesanais", updated.Descricao)
	assert.Len(t, env.geocoder.queries, 1)

	env.geocoder.coords = util.Coordinates{Latitude: -22.9068, Longitude: -43.1729}
	updated, err = lojistaService.Update(ctx, lojista.ID, LojistaInput{Cidade: strPtr("Rio de Janeiro"), Estado: strPtr("RJ")}, nil)
	require.NoError(t, err)
	require.Len(t, env.geocoder.queries, 2)
	assert.Equal(t, "Av. Paulista, 1000, Rio de Janeiro, RJ", env.geocoder.queries[1])
	assert.InDelta(t, -22.9068, *updated.Latitude, 1e-9)

	stored, err := lojistaService.GetByID(lojista.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rio de Janeiro", stored.Cidade)
	assert.Equal(t, "Padaria Central", stored.NomeEmpresa)
}

func TestLojistaService_DeleteAndStatus(t *testing.T) {
	lojistaService, env := setupLojistaServiceTest(t)
	ctx := context.Background()

	lojista, err := lojistaService.Create(ctx, validLojistaInput("loja@example.com"), pngUpload("loja.png"))
	require.NoError(t, err)

	require.NoError(t, lojistaService.SetStatus(lojista.ID, false))
	found, err := lojistaService.GetByID(lojista.ID)
	require.NoError(t, err)
	assert.False(t, found.Status)

	require.NoError(t, lojistaService.Delete(ctx, lojista.ID))
	assert.Contains(t, env.store.deleted, lojista.ImagemLojista)

	assert.ErrorIs(t, lojistaService.Delete(ctx, lojista.ID), ErrLojistaNotFound)
	assert.ErrorIs(t, lojistaService.SetStatus(lojista.ID, true), ErrLojistaNotFound)
}

func TestLojistaService_UpdateRejectsBlankRequiredFields(t *testing.T) {
	lojistaService, env := setupLojistaServiceTest(t)
	ctx := context.Background()

	lojista, err := lojistaService.Create(ctx, validLojistaInput("feira@example.com"), nil)
	require.NoError(t, err)

	_, err = lojistaService.Update(ctx, lojista.ID, LojistaInput{Logradouro: strPtr(""), Senha: strPtr("  ")}, nil)
	var reqErr *RequiredFieldsError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []string{"logradouro", "senha"}, reqErr.Fields)
	assert.Len(t, env.geocoder.queries, 1)

	stored, err := lojistaService.GetByID(lojista.ID)
	require.NoError(t, err)
	assert.Equal(t, "Av. Paulista, 1000", stored.Logradouro)
}

func TestLojistaService_UpdateUploadFailureClearsDiscardedImagem(t *testing.T) {
	lojistaService, env := setupLojistaServiceTest(t)
	ctx := context.Background()

	lojista, err := lojistaService.Create(ctx, validLojistaInput("acougue@example.com"), pngUpload("v1.png"))
	require.NoError(t, err)
	oldKey := lojista.ImagemLojista

	env.store.uploadErr = errBoom
	_, err = lojistaService.Update(ctx, lojista.ID, LojistaInput{}, pngUpload("v2.png"))
	assert.ErrorIs(t, err, ErrImageUpload)
	assert.Contains(t, env.store.deleted, oldKey)

	stored, err := lojistaService.GetByID(lojista.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ImagemLojista)
}

func TestLojistaService_CreateKeepsStatusActive(t *testing.T) {
	lojistaService, _ := setupLojistaServiceTest(t)

	lojista, err := lojistaService.Create(context.Background(), validLojistaInput("ativa@example.com"), nil)
	require.NoError(t, err)

	stored, err := lojistaService.GetByID(lojista.ID)
	require.NoError(t, err)
	assert.True(t, stored.Status)

	require.NoError(t, lojistaService.SetStatus(lojista.ID, false))
	stored, err = lojistaService.GetByID(lojista.ID)
	require.NoError(t, err)
	assert.False(t, stored.Status)
}

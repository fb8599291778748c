package service

import (
	"context"
	"sync"
	"testing"

	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAvaliacaoServiceTest(t *testing.T) (AvaliacaoService, *testEnv) {
	env := newTestEnv(t)
	return NewAvaliacaoService(env.db, env.avaliacaoRepo, env.lojistaRepo, env.userRepo), env
}

func TestAvaliacaoService_AvaliarRecomputesMedia(t *testing.T) {
	avaliacaoService, env := setupAvaliacaoServiceTest(t)
	ctx := context.Background()

	user := env.createUser(t, "Cliente", "cliente@example.com", true)
	lojista := env.createLojista(t, "Loja", "loja@example.com", nil, nil)

	expected := []float64{5, 4.5, 4.33}
	for i, nota := range []int{5, 4, 4} {
		avaliacao, media, err := avaliacaoService.Avaliar(ctx, AvaliacaoInput{
			LojistaID:  lojista.ID,
			UsuarioID:  user.ID,
			Nota:       nota,
			Comentario: "ok",
		})
		require.NoError(t, err)
		assert.NotZero(t, avaliacao.ID)
		assert.Equal(t, expected[i], media)
	}

	stored, err := env.lojistaRepo.FindByID(lojista.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.33, stored.Avaliacao)
	assert.Equal(t, 3, stored.NumeroAvaliacoes)
}

func TestAvaliacaoService_AvaliarRejections(t *testing.T) {
	avaliacaoService, env := setupAvaliacaoServiceTest(t)
	ctx := context.Background()

	user := env.createUser(t, "Cliente", "cliente@example.com", true)
	lojista := env.createLojista(t, "Loja", "loja@example.com", nil, nil)

	tests := []struct {
		name    string
		input   AvaliacaoInput
		wantErr error
	}{
		{name: "Nota zero", input: AvaliacaoInput{LojistaID: lojista.ID, UsuarioID: user.ID, Nota: 0}, wantErr: ErrInvalidNota},
		{name: "Nota seis", input: AvaliacaoInput{LojistaID: lojista.ID, UsuarioID: user.ID, Nota: 6}, wantErr: ErrInvalidNota},
		{name: "Unknown lojista", input: AvaliacaoInput{LojistaID: 9999, UsuarioID: user.ID, Nota: 3}, wantErr: ErrLojistaNotFound},
		{name: "Unknown usuario", input: AvaliacaoInput{LojistaID: lojista.ID, UsuarioID: 9999, Nota: 3}, wantErr: ErrUsuarioNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := avaliacaoService.Avaliar(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	agg, err := env.avaliacaoRepo.AggregateByLojistaID(lojista.ID)
	require.NoError(t, err)
	assert.Zero(t, agg.Total)
}

func TestAvaliacaoService_ConcurrentRatingsAreAllCounted(t *testing.T) {
	avaliacaoService, env := setupAvaliacaoServiceTest(t)
	ctx := context.Background()

	user := env.createUser(t, "Cliente", "cliente@example.com", true)
	lojista := env.createLojista(t, "Loja", "loja@example.com", nil, nil)

	notas := []int{1, 2, 3, 4, 5, 5, 4, 3}
	var wg sync.WaitGroup
	for _, nota := range notas {
		wg.Add(1)
		go func(nota int) {
			defer wg.Done()
			_, _, err := avaliacaoService.Avaliar(ctx, AvaliacaoInput{LojistaID: lojista.ID, UsuarioID: user.ID, Nota: nota})
			assert.NoError(t, err)
		}(nota)
	}
	wg.Wait()

	stored, err := env.lojistaRepo.FindByID(lojista.ID)
	require.NoError(t, err)
	assert.Equal(t, len(notas), stored.NumeroAvaliacoes)
	assert.Equal(t, mediaArredondada(repository.RatingAggregate{Soma: 27, Total: 8}), stored.Avaliacao)
}

func TestAvaliacaoService_ReadPaths(t *testing.T) {
	avaliacaoService, env := setupAvaliacaoServiceTest(t)
	ctx := context.Background()

	user := env.createUser(t, "Cliente", "cliente@example.com", true)
	lojista := env.createLojista(t, "Loja", "loja@example.com", nil, nil)
	_, _, err := avaliacaoService.Avaliar(ctx, AvaliacaoInput{LojistaID: lojista.ID, UsuarioID: user.ID, Nota: 5, Comentario: "Excelente"})
	require.NoError(t, err)

	avaliacoes, err := avaliacaoService.ListarPorLojista(lojista.ID)
	require.NoError(t, err)
	require.Len(t, avaliacoes, 1)
	require.NotNil(t, avaliacoes[0].Usuario)
	assert.Equal(t, "Cliente", avaliacoes[0].Usuario.Nome)

	comAvaliacoes, err := avaliacaoService.LojistaComAvaliacoes(lojista.ID)
	require.NoError(t, err)
	require.Len(t, comAvaliacoes.Avaliacoes, 1)
	assert.Equal(t, "Excelente", comAvaliacoes.Avaliacoes[0].Comentario)

	_, err = avaliacaoService.ListarPorLojista(9999)
	assert.ErrorIs(t, err, ErrLojistaNotFound)
	_, err = avaliacaoService.LojistaComAvaliacoes(9999)
	assert.ErrorIs(t, err, ErrLojistaNotFound)
}

func TestMediaArredondada(t *testing.T) {
	assert.Equal(t, 0.0, mediaArredondada(repository.RatingAggregate{}))
	assert.Equal(t, 3.67, mediaArredondada(repository.RatingAggregate{Soma: 11, Total: 3}))
	assert.Equal(t, 1.0, mediaArredondada(repository.RatingAggregate{Soma: 1, Total: 1}))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/AvancyBrasil/API-Find/config"
	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/db"
	"github.com/AvancyBrasil/API-Find/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeImageStore struct {
	mu        sync.Mutex
	seq       int
	objects   map[string][]byte
	deleted   []string
	uploadErr error
	deleteErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{objects: map[string][]byte{}}
}

func (f *fakeImageStore) Upload(_ context.Context, folder, filename, _ string, body io.Reader, _ int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.seq++
	key := fmt.Sprintf("%s/%d-%s", folder, f.seq, filename)
	f.objects[key] = data
	return key, nil
}

func (f *fakeImageStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeImageStore) URL(key string) string {
	return "https://cdn.test/" + key
}

type fakeGeocoder struct {
	coords  util.Coordinates
	err     error
	queries []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (*util.Coordinates, error) {
	f.queries = append(f.queries, address)
	if f.err != nil {
		return nil, f.err
	}
	c := f.coords
	return &c, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeLimiter struct {
	max      int
	failures map[string]int
	resets   int
}

func newFakeLimiter(max int) *fakeLimiter {
	return &fakeLimiter{max: max, failures: map[string]int{}}
}

func (f *fakeLimiter) Blocked(_ context.Context, identity string) (bool, error) {
	return f.failures[identity] >= f.max, nil
}

func (f *fakeLimiter) Fail(_ context.Context, identity string) error {
	f.failures[identity]++
	return nil
}

func (f *fakeLimiter) Reset(_ context.Context, identity string) error {
	delete(f.failures, identity)
	f.resets++
	return nil
}

type fakeCounter struct {
	total int64
	err   error
}

func (f *fakeCounter) CountAll(context.Context) (int64, error) {
	return f.total, f.err
}

// testEnv holds one in-memory database and the repositories over it.
type testEnv struct {
	db            *gorm.DB
	userRepo      repository.UserRepository
	lojistaRepo   repository.LojistaRepository
	produtoRepo   repository.ProdutoRepository
	validacaoRepo repository.ValidacaoRepository
	avaliacaoRepo repository.AvaliacaoRepository
	followRepo    repository.FollowRepository
	favoritoRepo  repository.FavoritoRepository
	orphanRepo    repository.OrphanImageRepository
	store         *fakeImageStore
	images        ImageService
	geocoder      *fakeGeocoder
}

func newTestEnv(t *testing.T) *testEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	env := &testEnv{
		db:            testDB,
		userRepo:      repository.NewUserRepository(testDB),
		lojistaRepo:   repository.NewLojistaRepository(testDB),
		produtoRepo:   repository.NewProdutoRepository(testDB),
		validacaoRepo: repository.NewValidacaoRepository(testDB),
		avaliacaoRepo: repository.NewAvaliacaoRepository(testDB),
		followRepo:    repository.NewFollowRepository(testDB),
		favoritoRepo:  repository.NewFavoritoRepository(testDB),
		orphanRepo:    repository.NewOrphanImageRepository(testDB),
		store:         newFakeImageStore(),
		geocoder:      &fakeGeocoder{coords: util.Coordinates{Latitude: -23.5505, Longitude: -46.6333}},
	}
	env.images = NewImageService(env.store, env.orphanRepo, 5<<20)
	return env
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		LojistasRadius:       20000,
		BuscaRadius:          5000,
		ProximosRadius:       20000,
		MinTopRatedAvaliacao: 4.0,
	}
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(v float64) *float64 {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}

func pngUpload(name string) *ImageUpload {
	body := "\x89PNG fake image"
	return &ImageUpload{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

func (env *testEnv) createUser(t *testing.T, nome, email string, status bool) *model.User {
	hashed, err := util.HashPassword("senha123")
	require.NoError(t, err)
	user := &model.User{Nome: nome, Email: email, Senha: hashed, Status: status}
	require.NoError(t, env.userRepo.Create(user))
	return user
}

func (env *testEnv) createLojista(t *testing.T, empresa, email string, lat, lng *float64) *model.Lojista {
	lojista := &model.Lojista{
		Nome:        "Dono " + empresa,
		NomeEmpresa: empresa,
		Email:       email,
		Senha:       "hash",
		Categoria:   "Alimentação",
		Latitude:    lat,
		Longitude:   lng,
		Status:      true,
	}
	require.NoError(t, env.lojistaRepo.Create(lojista))
	return lojista
}

func (env *testEnv) createProduto(t *testing.T, lojistaID uint, nome string, ativo bool) *model.Produto {
	produto := &model.Produto{
		Nome:          nome,
		Descricao:     "descricao de " + nome,
		Preco:         10.5,
		Categoria:     "Alimentação",
		ImagemProduto: "https://img.test/" + nome + ".png",
		IDLojista:     lojistaID,
		Status:        ativo,
	}
	require.NoError(t, env.produtoRepo.Create(produto))
	return produto
}

var errBoom = errors.New("boom")

package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/AvancyBrasil/API-Find/config"
	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/AvancyBrasil/API-Find/internal/db"
	"github.com/AvancyBrasil/API-Find/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryStore struct {
	mu        sync.Mutex
	seq       int
	objects   map[string]bool
	deleteErr error
}

func (m *memoryStore) Upload(_ context.Context, folder, filename, _ string, body io.Reader, _ int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	m.seq++
	key := fmt.Sprintf("%s/%d-%s", folder, m.seq, filename)
	m.objects[key] = true
	return key, nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) URL(key string) string {
	return "https://cdn.test/" + key
}

type stubGeocoder struct {
	coords util.Coordinates
	err    error
}

func (s *stubGeocoder) Geocode(context.Context, string) (*util.Coordinates, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := s.coords
	return &c, nil
}

type recordingMailer struct {
	to  []string
	err error
}

func (r *recordingMailer) Send(to, _, _ string) error {
	if r.err != nil {
		return r.err
	}
	r.to = append(r.to, to)
	return nil
}

type stubCounter struct {
	total int64
}

func (s stubCounter) CountAll(context.Context) (int64, error) {
	return s.total, nil
}

// testServer is a full route table over an in-memory database.
type testServer struct {
	engine   *gin.Engine
	db       *gorm.DB
	store    *memoryStore
	geocoder *stubGeocoder
	mailer   *recordingMailer

	userRepo    repository.UserRepository
	lojistaRepo repository.LojistaRepository
	produtoRepo repository.ProdutoRepository
}

func setupTestServer(t *testing.T, counter service.DocumentCounter) *testServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	ts := &testServer{
		db:          testDB,
		store:       &memoryStore{objects: map[string]bool{}},
		geocoder:    &stubGeocoder{coords: util.Coordinates{Latitude: -23.5, Longitude: -46.6}},
		mailer:      &recordingMailer{},
		userRepo:    repository.NewUserRepository(testDB),
		lojistaRepo: repository.NewLojistaRepository(testDB),
		produtoRepo: repository.NewProdutoRepository(testDB),
	}

	validacaoRepo := repository.NewValidacaoRepository(testDB)
	avaliacaoRepo := repository.NewAvaliacaoRepository(testDB)
	followRepo := repository.NewFollowRepository(testDB)
	favoritoRepo := repository.NewFavoritoRepository(testDB)
	orphanRepo := repository.NewOrphanImageRepository(testDB)

	images := service.NewImageService(ts.store, orphanRepo, 5<<20)
	searchService := service.NewSearchService(ts.lojistaRepo, ts.produtoRepo, config.SearchConfig{
		LojistasRadius:       20000,
		BuscaRadius:          5000,
		ProximosRadius:       20000,
		MinTopRatedAvaliacao: 4.0,
	})

	usuarios := NewUsuarioController(service.NewUserService(ts.userRepo, images))
	lojistas := NewLojistaController(service.NewLojistaService(ts.lojistaRepo, images, ts.geocoder), searchService)
	auth := NewAuthController(service.NewAuthService(ts.userRepo, ts.lojistaRepo, nil))
	produtos := NewProdutoController(service.NewProdutoService(ts.produtoRepo, ts.lojistaRepo))
	search := NewSearchController(searchService)
	follows := NewFollowController(service.NewFollowService(followRepo, ts.userRepo, ts.lojistaRepo, ts.produtoRepo))
	favoritos := NewFavoritoController(service.NewFavoritoService(favoritoRepo, ts.userRepo, ts.produtoRepo))
	avaliacoes := NewAvaliacaoController(service.NewAvaliacaoService(testDB, avaliacaoRepo, ts.lojistaRepo, ts.userRepo))
	stats := NewStatsController(service.NewStatsService(ts.userRepo, ts.lojistaRepo, counter))
	validacoes := NewValidacaoController(
		service.NewValidacaoService(testDB, validacaoRepo, ts.geocoder, ts.mailer),
		service.NewEmailService(ts.mailer),
	)

	r := gin.New()
	r.GET("/usuarios", usuarios.List)
	r.GET("/usuarios/:id", usuarios.GetByID)
	r.POST("/usuarios", usuarios.Create)
	r.PUT("/usuarios/:id", usuarios.Update)
	r.DELETE("/usuarios/:id", usuarios.Delete)
	r.PUT("/usuarios/:id/banir", usuarios.Banir)

	r.GET("/lojistas", lojistas.List)
	r.GET("/lojistas/:id", lojistas.GetByID)
	r.POST("/lojistas", lojistas.Create)
	r.PUT("/lojistas/:id", lojistas.Update)
	r.DELETE("/lojistas/:id", lojistas.Delete)
	r.PUT("/lojistas/:id/banir", lojistas.Banir)

	r.POST("/login/usuarios", auth.LoginUsuario)
	r.POST("/login/lojistas", auth.LoginLojista)

	r.GET("/produtos", produtos.List)
	r.GET("/produtos/:id", produtos.GetByID)
	r.POST("/produtos", produtos.Create)
	r.PUT("/produtos/:id", produtos.Update)
	r.DELETE("/produtos/:id", produtos.Delete)

	r.GET("/busca", search.Busca)
	r.GET("/busca-produtos", search.BuscaProdutos)
	r.GET("/lojistas-proximos", search.Proximos)
	r.GET("/lojistas-melhor-avaliados", search.MelhorAvaliados)

	r.POST("/seguir", follows.Seguir)
	r.DELETE("/deixar-seguir", follows.DeixarDeSeguir)
	r.GET("/verificar-seguindo", follows.VerificarSeguindo)
	r.GET("/produtos-seguindo", follows.ProdutosSeguindo)
	r.GET("/lojista/:lojistaId/seguidores", follows.Seguidores)

	r.POST("/adicionar-favorito", favoritos.Adicionar)
	r.GET("/verificar-favorito/:userId/:produtoId", favoritos.Verificar)
	r.DELETE("/remover-favorito/:userId/:produtoId", favoritos.Remover)
	r.GET("/favoritos/usuario/:id", favoritos.ListarPorUsuario)

	r.POST("/avaliar-lojista", avaliacoes.Avaliar)
	r.GET("/avaliacoes/lojista/:id", avaliacoes.ListarPorLojista)
	r.GET("/avaliacoes2/lojista/:lojistaId", avaliacoes.LojistaComAvaliacoes)

	r.GET("/usuariosTotal", stats.Total)
	r.GET("/usuariosStatus", stats.Status)

	r.GET("/validacao", validacoes.List)
	r.GET("/validacao/:id", validacoes.GetByID)
	r.POST("/validacao", validacoes.Create)
	r.DELETE("/validacao/:id", validacoes.Delete)
	r.POST("/validacao/:id/aprovar", validacoes.Aprovar)
	r.POST("/validacao/emailAprovado", validacoes.EmailAprovado)

	ts.engine = r
	return ts
}

func (ts *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

// multipartBody builds a form with fields plus an optional image part.
func multipartBody(t *testing.T, fields map[string]string, fileField, contentType string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="foto.png"`, fileField))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG fake"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func (ts *testServer) doMultipart(t *testing.T, method, path string, fields map[string]string, fileField, contentType string) *httptest.ResponseRecorder {
	body, ct := multipartBody(t, fields, fileField, contentType)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func (ts *testServer) seedUser(t *testing.T, nome, email string, status bool) *model.User {
	hashed, err := util.HashPassword("senha123")
	require.NoError(t, err)
	user := &model.User{Nome: nome, Email: email, Senha: hashed, Status: status}
	require.NoError(t, ts.userRepo.Create(user))
	return user
}

func (ts *testServer) seedLojista(t *testing.T, empresa, email string, lat, lng float64) *model.Lojista {
	hashed, err := util.HashPassword("senha123")
	require.NoError(t, err)
	lojista := &model.Lojista{
		Nome:        "Dono",
		NomeEmpresa: empresa,
		Email:       email,
		Senha:       hashed,
		Categoria:   "Alimentação",
		Latitude:    &lat,
		Longitude:   &lng,
		Status:      true,
	}
	require.NoError(t, ts.lojistaRepo.Create(lojista))
	return lojista
}

func (ts *testServer) seedProduto(t *testing.T, lojistaID uint, nome string) *model.Produto {
	produto := &model.Produto{
		Nome:          nome,
		Descricao:     "descricao",
		Preco:         12.9,
		Categoria:     "Alimentação",
		ImagemProduto: "https://img.test/p.png",
		IDLojista:     lojistaID,
		Status:        true,
	}
	require.NoError(t, ts.produtoRepo.Create(produto))
	return produto
}

func urlf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}


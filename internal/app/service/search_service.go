package service

import (
	"sort"

	"github.com/AvancyBrasil/API-Find/config"
	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"github.com/AvancyBrasil/API-Find/pkg/util"
)

// Point is the caller's position.
type Point struct {
	Latitude  float64
	Longitude float64
}

// LojistaComDistancia is a lojista with its distance from the caller.
type LojistaComDistancia struct {
	model.Lojista
	Distancia          int    `json:"distancia"`
	DistanciaFormatada string `json:"distanciaFormatada"`
}

type ProdutoComDistancia struct {
	model.Produto
	Distancia          int    `json:"distancia"`
	DistanciaFormatada string `json:"distanciaFormatada"`
}

// LojistaAvaliado is the summary returned by the top rated listing.
// Distance is null for lojistas that were never geocoded.
type LojistaAvaliado struct {
	ID                 uint    `json:"id"`
	Nome               string  `json:"nome"`
	NomeEmpresa        string  `json:"nomeEmpresa"`
	Avaliacao          float64 `json:"avaliacao"`
	ImagemLojista      string  `json:"imagemLojista"`
	Categoria          string  `json:"categoria"`
	Distancia          *int    `json:"distancia"`
	DistanciaFormatada *string `json:"distanciaFormatada"`
}

// LojistaSearchResult keeps the number of matches found before the radius
// cut so callers can tell "no match" from "nothing nearby".
type LojistaSearchResult struct {
	Lojistas   []LojistaComDistancia
	Candidates int
	RaioMetros int
}

type ProdutoSearchResult struct {
	Produtos   []ProdutoComDistancia
	Candidates int
	RaioMetros int
}

type SearchService interface {
	LojistasNoRaio(filter repository.LojistaFilter, origem Point) (*LojistaSearchResult, error)
	Buscar(termo string, origem Point) (*LojistaSearchResult, error)
	BuscarProdutos(termo string, origem Point) (*ProdutoSearchResult, error)
	Proximos(origem Point) (*LojistaSearchResult, error)
	MelhorAvaliados(origem Point) ([]LojistaAvaliado, error)
}

type searchService struct {
	lojistaRepo repository.LojistaRepository
	produtoRepo repository.ProdutoRepository
	cfg         config.SearchConfig
}

func NewSearchService(lojistaRepo repository.LojistaRepository, produtoRepo repository.ProdutoRepository, cfg config.SearchConfig) SearchService {
	return &searchService{
		lojistaRepo: lojistaRepo,
		produtoRepo: produtoRepo,
		cfg:         cfg,
	}
}

// DistanciaAte measures how far lojista is from origem. ok is false when the
// lojista has no coordinates.
func DistanciaAte(lojista *model.Lojista, origem Point) (meters int, ok bool) {
	if lojista == nil || !lojista.HasCoordinates() {
		return 0, false
	}
	return util.DistanceMeters(*lojista.Latitude, *lojista.Longitude, origem.Latitude, origem.Longitude), true
}

// withinRadius keeps the lojistas at most raio meters away, nearest first.
func withinRadius(lojistas []model.Lojista, origem Point, raio int) []LojistaComDistancia {
	result := make([]LojistaComDistancia, 0, len(lojistas))
	for _, lojista := range lojistas {
		d, ok := DistanciaAte(&lojista, origem)
		if !ok || d > raio {
			continue
		}
		result = append(result, LojistaComDistancia{
			Lojista:            lojista,
			Distancia:          d,
			DistanciaFormatada: util.FormatDistance(d),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Distancia < result[j].Distancia
	})
	return result
}

func (s *searchService) lojistasWithin(filter repository.LojistaFilter, origem Point, raio int) (*LojistaSearchResult, error) {
	lojistas, err := s.lojistaRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	result := &LojistaSearchResult{
		Lojistas:   withinRadius(lojistas, origem, raio),
		Candidates: len(lojistas),
		RaioMetros: raio,
	}
	logger.Debug("Radius search finished", map[string]interface{}{
		"candidates": result.Candidates,
		"found":      len(result.Lojistas),
		"raio":       raio,
	})
	return result, nil
}

func (s *searchService) LojistasNoRaio(filter repository.LojistaFilter, origem Point) (*LojistaSearchResult, error) {
	return s.lojistasWithin(filter, origem, s.cfg.LojistasRadius)
}

func (s *searchService) Buscar(termo string, origem Point) (*LojistaSearchResult, error) {
	return s.lojistasWithin(repository.LojistaFilter{Termo: termo}, origem, s.cfg.BuscaRadius)
}

func (s *searchService) Proximos(origem Point) (*LojistaSearchResult, error) {
	return s.lojistasWithin(repository.LojistaFilter{WithCoordinates: true}, origem, s.cfg.ProximosRadius)
}

func (s *searchService) BuscarProdutos(termo string, origem Point) (*ProdutoSearchResult, error) {
	produtos, err := s.produtoRepo.FindAllWithLojista(repository.ProdutoFilter{Nome: termo})
	if err != nil {
		return nil, err
	}

	raio := s.cfg.BuscaRadius
	result := &ProdutoSearchResult{
		Produtos:   make([]ProdutoComDistancia, 0, len(produtos)),
		Candidates: len(produtos),
		RaioMetros: raio,
	}
	for _, produto := range produtos {
		d, ok := DistanciaAte(produto.Lojista, origem)
		if !ok || d > raio {
			continue
		}
		result.Produtos = append(result.Produtos, ProdutoComDistancia{
			Produto:            produto,
			Distancia:          d,
			DistanciaFormatada: util.FormatDistance(d),
		})
	}
	sort.SliceStable(result.Produtos, func(i, j int) bool {
		return result.Produtos[i].Distancia < result.Produtos[j].Distancia
	})
	return result, nil
}

func (s *searchService) MelhorAvaliados(origem Point) ([]LojistaAvaliado, error) {
	lojistas, err := s.lojistaRepo.FindTopRated(s.cfg.MinTopRatedAvaliacao)
	if err != nil {
		return nil, err
	}

	result := make([]LojistaAvaliado, 0, len(lojistas))
	for i := range lojistas {
		lojista := &lojistas[i]
		item := LojistaAvaliado{
			ID:            lojista.ID,
			Nome:          lojista.Nome,
			NomeEmpresa:   lojista.NomeEmpresa,
			Avaliacao:     lojista.Avaliacao,
			ImagemLojista: lojista.ImagemLojista,
			Categoria:     lojista.Categoria,
		}
		if d, ok := DistanciaAte(lojista, origem); ok {
			formatted := util.FormatDistance(d)
			item.Distancia = &d
			item.DistanciaFormatada = &formatted
		}
		result = append(result, item)
	}
	return result, nil
}

package router

import (
	"net/http"

	"github.com/AvancyBrasil/API-Find/config"
	"github.com/AvancyBrasil/API-Find/internal/app/controller"
	"github.com/AvancyBrasil/API-Find/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups every handler set the router mounts.
type Controllers struct {
	Usuario   *controller.UsuarioController
	Lojista   *controller.LojistaController
	Auth      *controller.AuthController
	Produto   *controller.ProdutoController
	Search    *controller.SearchController
	Follow    *controller.FollowController
	Favorito  *controller.FavoritoController
	Avaliacao *controller.AvaliacaoController
	Stats     *controller.StatsController
	Validacao *controller.ValidacaoController
}

type Router struct {
	controllers Controllers
	config      *config.Config
}

func NewRouter(controllers Controllers, cfg *config.Config) *Router {
	return &Router{
		controllers: controllers,
		config:      cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "API Find is running",
		})
	})

	ctrl := r.controllers

	usuarios := router.Group("/usuarios")
	{
		usuarios.GET("", ctrl.Usuario.List)
		usuarios.GET("/:id", ctrl.Usuario.GetByID)
		usuarios.POST("", ctrl.Usuario.Create)
		usuarios.PUT("/:id", ctrl.Usuario.Update)
		usuarios.DELETE("/:id", ctrl.Usuario.Delete)
		usuarios.PUT("/:id/banir", ctrl.Usuario.Banir)
	}

	lojistas := router.Group("/lojistas")
	{
		lojistas.GET("", ctrl.Lojista.List)
		lojistas.GET("/:id", ctrl.Lojista.GetByID)
		lojistas.POST("", ctrl.Lojista.Create)
		lojistas.PUT("/:id", ctrl.Lojista.Update)
		lojistas.DELETE("/:id", ctrl.Lojista.Delete)
		lojistas.PUT("/:id/banir", ctrl.Lojista.Banir)
	}

	login := router.Group("/login")
	{
		login.POST("/usuarios", ctrl.Auth.LoginUsuario)
		login.POST("/lojistas", ctrl.Auth.LoginLojista)
	}

	produtos := router.Group("/produtos")
	{
		produtos.GET("", ctrl.Produto.List)
		produtos.GET("/:id", ctrl.Produto.GetByID)
		produtos.POST("", ctrl.Produto.Create)
		produtos.PUT("/:id", ctrl.Produto.Update)
		produtos.DELETE("/:id", ctrl.Produto.Delete)
	}

	router.GET("/busca", ctrl.Search.Busca)
	router.GET("/busca-produtos", ctrl.Search.BuscaProdutos)
	router.GET("/lojistas-proximos", ctrl.Search.Proximos)
	router.GET("/lojistas-melhor-avaliados", ctrl.Search.MelhorAvaliados)

	router.POST("/seguir", ctrl.Follow.Seguir)
	router.DELETE("/deixar-seguir", ctrl.Follow.DeixarDeSeguir)
	router.GET("/verificar-seguindo", ctrl.Follow.VerificarSeguindo)
	router.GET("/produtos-seguindo", ctrl.Follow.ProdutosSeguindo)
	router.GET("/lojista/:lojistaId/seguidores", ctrl.Follow.Seguidores)

	router.POST("/adicionar-favorito", ctrl.Favorito.Adicionar)
	router.GET("/verificar-favorito/:userId/:produtoId", ctrl.Favorito.Verificar)
	router.DELETE("/remover-favorito/:userId/:produtoId", ctrl.Favorito.Remover)
	router.GET("/favoritos/usuario/:id", ctrl.Favorito.ListarPorUsuario)

	router.POST("/avaliar-lojista", ctrl.Avaliacao.Avaliar)
	router.GET("/avaliacoes/lojista/:id", ctrl.Avaliacao.ListarPorLojista)
	router.GET("/avaliacoes2/lojista/:lojistaId", ctrl.Avaliacao.LojistaComAvaliacoes)

	router.GET("/usuariosTotal", ctrl.Stats.Total)
	router.GET("/usuariosStatus", ctrl.Stats.Status)

	validacao := router.Group("/validacao")
	{
		validacao.GET("", ctrl.Validacao.List)
		validacao.GET("/:id", ctrl.Validacao.GetByID)
		validacao.POST("", ctrl.Validacao.Create)
		validacao.DELETE("/:id", ctrl.Validacao.Delete)
		validacao.POST("/:id/aprovar", ctrl.Validacao.Aprovar)
		validacao.POST("/emailAprovado", ctrl.Validacao.EmailAprovado)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

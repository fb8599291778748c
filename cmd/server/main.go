package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AvancyBrasil/API-Find/config"
	"github.com/AvancyBrasil/API-Find/internal/app/controller"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/AvancyBrasil/API-Find/internal/db"
	"github.com/AvancyBrasil/API-Find/internal/router"
	"github.com/AvancyBrasil/API-Find/internal/scheduler"
	"github.com/AvancyBrasil/API-Find/internal/storage"
	"github.com/AvancyBrasil/API-Find/pkg/docstore"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	redisclient "github.com/AvancyBrasil/API-Find/pkg/redis"
	"github.com/AvancyBrasil/API-Find/pkg/util"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting API Find server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	database, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// External clients
	imageStore := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)
	geocoder := util.NewOpenCageClient(cfg.Geocode.BaseURL, cfg.Geocode.APIKey, cfg.Geocode.Timeout)
	mailer := util.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	if cfg.Geocode.APIKey == "" {
		logger.Warn("OPENCAGE_API_KEY is not set; lojista registration will fail to geocode")
	}

	var counter service.DocumentCounter
	if cfg.Mongo.URI != "" {
		docs, err := docstore.Connect(
			context.Background(),
			cfg.Mongo.URI,
			cfg.Mongo.Database,
			cfg.Mongo.ConnectTimeout,
			cfg.Mongo.UserCollection,
			cfg.Mongo.LojistaCollection,
		)
		if err != nil {
			logger.Warn("Document store unavailable, counting from the relational tables", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			counter = docs
			defer func() {
				if err := docs.Close(context.Background()); err != nil {
					logger.Error("Failed to close document store", err)
				}
			}()
		}
	}

	var limiter service.LoginLimiter
	if cfg.Redis.Enabled() {
		client, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, login attempts are not limited", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			limiter = redisclient.NewLoginLimiter(client, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)
			defer client.Close()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	lojistaRepo := repository.NewLojistaRepository(database)
	produtoRepo := repository.NewProdutoRepository(database)
	validacaoRepo := repository.NewValidacaoRepository(database)
	avaliacaoRepo := repository.NewAvaliacaoRepository(database)
	followRepo := repository.NewFollowRepository(database)
	favoritoRepo := repository.NewFavoritoRepository(database)
	orphanRepo := repository.NewOrphanImageRepository(database)

	// Initialize services
	imageService := service.NewImageService(imageStore, orphanRepo, cfg.S3.MaxImageSize)
	userService := service.NewUserService(userRepo, imageService)
	lojistaService := service.NewLojistaService(lojistaRepo, imageService, geocoder)
	authService := service.NewAuthService(userRepo, lojistaRepo, limiter)
	produtoService := service.NewProdutoService(produtoRepo, lojistaRepo)
	searchService := service.NewSearchService(lojistaRepo, produtoRepo, cfg.Search)
	followService := service.NewFollowService(followRepo, userRepo, lojistaRepo, produtoRepo)
	favoritoService := service.NewFavoritoService(favoritoRepo, userRepo, produtoRepo)
	avaliacaoService := service.NewAvaliacaoService(database, avaliacaoRepo, lojistaRepo, userRepo)
	statsService := service.NewStatsService(userRepo, lojistaRepo, counter)
	validacaoService := service.NewValidacaoService(database, validacaoRepo, geocoder, mailer)
	emailService := service.NewEmailService(mailer)

	// Setup router
	r := router.NewRouter(router.Controllers{
		Usuario:   controller.NewUsuarioController(userService),
		Lojista:   controller.NewLojistaController(lojistaService, searchService),
		Auth:      controller.NewAuthController(authService),
		Produto:   controller.NewProdutoController(produtoService),
		Search:    controller.NewSearchController(searchService),
		Follow:    controller.NewFollowController(followService),
		Favorito:  controller.NewFavoritoController(favoritoService),
		Avaliacao: controller.NewAvaliacaoController(avaliacaoService),
		Stats:     controller.NewStatsController(statsService),
		Validacao: controller.NewValidacaoController(validacaoService, emailService),
	}, cfg)
	engine := r.Setup()

	orphanScheduler := scheduler.NewOrphanImageScheduler(
		imageService,
		cfg.Scheduler.OrphanSweepSpec,
		cfg.Scheduler.OrphanSweepBatch,
	)
	if err := orphanScheduler.Start(); err != nil {
		logger.Warn("Orphan image sweep disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer orphanScheduler.Stop()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", err)
	}
	logger.Info("Server stopped successfully")
}

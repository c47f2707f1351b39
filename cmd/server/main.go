package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "matchmaker/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchmaker/internal/cache"
	"matchmaker/internal/config"
	"matchmaker/internal/db"
	"matchmaker/internal/handler"
	"matchmaker/internal/metrics"
	"matchmaker/internal/repository"
	"matchmaker/internal/router"
	"matchmaker/internal/service"
	"matchmaker/internal/session"
	"matchmaker/internal/view"
)

// @title Creative Project Matchmaker API
// @version 1.0
// @description JSON endpoints behind the project search map.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, running without cache and session revocation")
	}

	m := metrics.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)

	sessions := session.NewManager(cfg.SecretKey, cfg.SessionTTL, cfg.CookieSecure, session.NewRedisStore(cacheClient))

	// Initialize services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, authService)
	tagService := service.NewTagService(tagRepo, cacheClient)
	projectService := service.NewProjectService(projectRepo, tagService)
	geocodeService := service.NewGeocodeService(cfg.GeocodeURL, cfg.GeocodeAPIKey, cfg.GeocodeTimeout, m.ObserveGeocode)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	router.Register(
		e,
		cfg,
		logger,
		m,
		sessions,
		userRepo,
		handler.NewPageHandler(),
		handler.NewAuthHandler(authService, sessions),
		handler.NewProfileHandler(userService, sessions),
		handler.NewProjectHandler(projectService, tagService),
		handler.NewAPIHandler(projectService, tagService, geocodeService),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"notesvc/docs" // swagger docs
	"notesvc/internal/auth"
	"notesvc/internal/cache"
	"notesvc/internal/config"
	"notesvc/internal/db"
	"notesvc/internal/handler"
	"notesvc/internal/logging"
	"notesvc/internal/repository"
	"notesvc/internal/router"
	"notesvc/internal/service"
)

// @title Notes API
// @version 1.0
// @description Personal notes with per-user ownership and JWT authentication.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "json").WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.WithError(err).Warn("failed to drop tables")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.WithError(err).Warn("redis unreachable, credential cache will miss")
	}
	defer cacheClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Services
	credentials := service.NewCredentialStore(userRepo, cacheClient, log)
	authService := service.NewAuthService(credentials, jwtService, log)
	noteService := service.NewNoteService(noteRepo, log, nil)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	noteHandler := handler.NewNoteHandler(noteService, log)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, jwtService, authHandler, noteHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	log.Info("server stopped")
}

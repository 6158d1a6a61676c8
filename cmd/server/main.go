package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"userapi/docs" // swagger docs
	"userapi/internal/auth"
	"userapi/internal/cache"
	"userapi/internal/config"
	"userapi/internal/db"
	"userapi/internal/handler"
	"userapi/internal/logger"
	"userapi/internal/repository"
	"userapi/internal/router"
	"userapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title User API
// @version 1.0
// @description User accounts with bearer token login.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Load()
	log := logger.New("userapi", cfg.LogLevel)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Error("database init", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB, log); err != nil {
		log.Error("database migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("redis unreachable, continuing without cache", "addr", cfg.RedisAddr, "error", err)
	}
	cancelPing()

	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	userService := service.NewUserService(userRepo, cacheClient, log, cfg.BcryptCost, cfg.UserCacheTTL)
	authService := service.NewAuthService(userRepo, userService, jwtService, tokenStore, cfg.RevocationTTL, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(
		e,
		log,
		router.NewMetrics("userapi"),
		jwtService,
		authService,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info("server listening", "addr", addr, "db_driver", cfg.DBDriver, "swagger", "/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "feedbackhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/cache"
	"feedbackhub/internal/config"
	"feedbackhub/internal/db"
	"feedbackhub/internal/gateway"
	"feedbackhub/internal/handler"
	"feedbackhub/internal/logger"
	"feedbackhub/internal/metrics"
	"feedbackhub/internal/repository"
	"feedbackhub/internal/router"
	"feedbackhub/internal/service"
	"feedbackhub/internal/session"
	"feedbackhub/internal/workflow"
)

// @title Feedback Hub
// @version 1.0
// @description Web client for the feedback service: submission, moderation board, categories and dashboards.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	appLogger := logger.SetupDefault(os.Stdout, slog.LevelInfo)

	e := echo.New()
	e.HideBanner = true

	// Moderation log is optional: without MYSQL_DSN events are dropped.
	moderation := service.NopModerationLog()
	if cfg.MySQLDSN != "" {
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("database init: %v", err)
		}
		if err := db.Migrate(gormDB, cfg.ResetDB, appLogger); err != nil {
			log.Fatalf("database migrate: %v", err)
		}
		moderation = service.NewModerationLog(repository.NewModerationEventRepository(gormDB), appLogger)
	} else {
		appLogger.Warn("MYSQL_DSN not set, moderation log disabled")
	}
	defer moderation.Close()

	// Sessions and cached boards live in redis; without it they stay in memory.
	var (
		backends handler.BackendFactory
		boards   service.BoardStore
	)
	if cfg.RedisAddr != "" {
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cacheClient.Close()
		if err := cacheClient.Ping(context.Background()); err != nil {
			appLogger.Warn("redis unreachable, sessions will not persist", slog.Any("error", err))
		}
		backends = func(id string) session.Backend {
			return session.NewRedisBackend(cacheClient, id, cfg.SessionTTL)
		}
		boards = service.NewBoardCache(cacheClient, cfg.BoardTTL)
	} else {
		appLogger.Warn("REDIS_ADDR empty, sessions kept in memory")
		backends = session.NewMemoryPool().Backend
		boards = service.NewMemoryBoards()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	api := gateway.New(cfg.APIBaseURL, nil,
		gateway.WithTimeout(cfg.APITimeout),
		gateway.WithMetrics(collector),
		gateway.WithLogger(appLogger),
	)

	validator := workflow.NewValidator()
	base := handler.NewBase(api, service.Deps{
		Validator:  validator,
		Boards:     boards,
		Moderation: moderation,
		Logger:     appLogger,
	}, appLogger)

	jwtService := auth.NewJWTService(cfg.SessionSecret, cfg.SessionTTL)

	router.Register(e, cfg, router.Handlers{
		Sessions:   handler.NewSessionManager(jwtService, backends, cfg.CookieSecure),
		Auth:       handler.NewAuthHandler(base),
		Feedback:   handler.NewFeedbackHandler(base),
		Admin:      handler.NewAdminHandler(base),
		Category:   handler.NewCategoryHandler(base),
		Dashboard:  handler.NewDashboardHandler(base),
		Moderation: handler.NewModerationHandler(base),
		Validator:  validator,
		Metrics:    metrics.Handler(registry),
	})

	if err := api.Ping(context.Background()); err != nil {
		appLogger.Warn("feedback service not reachable yet", slog.String("url", cfg.APIBaseURL), slog.Any("error", err))
	}

	// Log swagger full path
	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(swaggerHost, "http://") && !strings.HasPrefix(swaggerHost, "https://") {
		swaggerHost = "http://" + swaggerHost
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		appLogger.Error("server shutdown", slog.Any("error", err))
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/lynquer/lynquer-api/config"
	"github.com/lynquer/lynquer-api/internal/email"
	"github.com/lynquer/lynquer-api/internal/health"
	"github.com/lynquer/lynquer-api/internal/infrastructure/postgres"
	ctxlog "github.com/lynquer/lynquer-api/internal/log"
	"github.com/lynquer/lynquer-api/internal/maintenance"
	"github.com/lynquer/lynquer-api/internal/metrics"
	httptransport "github.com/lynquer/lynquer-api/internal/transport/http"
	"github.com/lynquer/lynquer-api/internal/transport/http/handler"
	"github.com/lynquer/lynquer-api/internal/upload"
	"github.com/lynquer/lynquer-api/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	linkRepo := postgres.NewLinkRepository(pool)
	tokenRepo := postgres.NewResetTokenRepository(pool)

	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	uploader := upload.NewUploader(cfg.Env, cfg.ImageHostURL, cfg.ImageHostKey, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokenRepo, emailSender, []byte(cfg.TokenSecret), cfg.FrontendBaseURL)
	userUsecase := usecase.NewUserUsecase(userRepo, uploader)
	linkUsecase := usecase.NewLinkUsecase(linkRepo, userRepo)

	authHandler := handler.NewAuthHandler(authUsecase, logger, cfg.Env != "local")
	userHandler := handler.NewUserHandler(userUsecase, logger)
	linkHandler := handler.NewLinkHandler(linkUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	purger, err := maintenance.NewTokenPurger(tokenRepo, cfg.TokenPurgeSchedule, logger)
	if err != nil {
		stop()
		log.Fatalf("purger: %v", err)
	}
	go purger.Start(ctx)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, userHandler, linkHandler, []byte(cfg.TokenSecret)),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/tempizhere/qrgen/internal/app"
	"github.com/tempizhere/qrgen/internal/config"
	"github.com/tempizhere/qrgen/internal/log"
	"github.com/tempizhere/qrgen/internal/middleware"
	"github.com/tempizhere/qrgen/internal/render"
	"github.com/tempizhere/qrgen/internal/scan"
	"github.com/tempizhere/qrgen/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()
	logger := log.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	svc := service.NewService(render.NewEncoder(), scan.NewDecoder(), logger)
	appInstance := app.NewApp(svc, logger, cfg.MaxImageSize)

	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.BodyLimitMiddleware(cfg.MaxBodySize))
	r.Use(middleware.GzipRequestMiddleware)
	r.Use(chimiddleware.Compress(5, "application/json", "image/svg+xml"))

	r.Get("/", appInstance.HandleDocs)
	r.Get("/ping", appInstance.HandlePing)
	r.Get("/api/qr/{type}", appInstance.HandleGenerate)
	r.Post("/api/qr/bulk", appInstance.HandleBulkGenerate)
	r.Post("/api/qr/decode", appInstance.HandleDecodeUpload)
	r.Post("/api/qr/decode/base64", appInstance.HandleDecodeBase64)
	r.NotFound(appInstance.HandleNotFound)

	srv := &http.Server{Addr: cfg.RunAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.RunAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

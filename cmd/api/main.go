package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/lexmx/legal-assistant/internal/adapters/http"
	"github.com/lexmx/legal-assistant/internal/bootstrap"
	"github.com/lexmx/legal-assistant/internal/config"
	"github.com/lexmx/legal-assistant/internal/observability/logging"
	"github.com/lexmx/legal-assistant/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.NewJSONLogger("api", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger, bootstrap.Options{})
	if err != nil {
		logger.Error("bootstrap failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	// The keyword index lives in this process; rebuild it from already-ready
	// documents and keep it fresh from ingestion events.
	go func() {
		if err := app.KeywordRebuildUC.Rebuild(ctx); err != nil {
			logger.Error("keyword index rebuild failed", slog.String("error", err.Error()))
		}
	}()
	go func() {
		err := app.Queue.SubscribeDocumentIngestedAll(ctx, func(handlerCtx context.Context, documentID string) error {
			indexCtx, cancel := context.WithTimeout(handlerCtx, 2*time.Minute)
			defer cancel()
			return app.KeywordRebuildUC.IndexByID(indexCtx, documentID)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("keyword refresh subscription failed", slog.String("error", err.Error()))
		}
	}()

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	router := httpadapter.NewRouter(cfg, app.IngestUC, app.SearchUC, app.Repo, httpMetrics, logger)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", slog.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", slog.String("error", err.Error()))
	}
}

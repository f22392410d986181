package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpadapter "github.com/lexmx/legal-assistant/internal/adapters/mcp"
	"github.com/lexmx/legal-assistant/internal/bootstrap"
	"github.com/lexmx/legal-assistant/internal/config"
	"github.com/lexmx/legal-assistant/internal/observability/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	// stdout carries the MCP protocol stream; all logging goes to stderr.
	logger := logging.NewJSONLoggerTo(os.Stderr, "mcp", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger, bootstrap.Options{})
	if err != nil {
		logger.Error("bootstrap failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.KeywordRebuildUC.Rebuild(ctx); err != nil {
		logger.Error("keyword index rebuild failed", slog.String("error", err.Error()))
	}

	srv := mcpadapter.NewServer(app.SearchUC, app.Repo, logger)
	if err := srv.ServeStdio(); err != nil {
		logger.Error("mcp server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wildmenipedia/internal/app"
	"wildmenipedia/internal/config"
	"wildmenipedia/internal/http"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions by fusing knowledge-graph facts with vector
// search and cites supporting web pages.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Wildmenipedia API
//   description: |
//     Hybrid question answering over a knowledge graph and an entity vector index.
//     Answers carry ranked facts, footnoted sources and a confidence level.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	app.SetupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	deps := &http.Deps{
		Answers:        a.Answers,
		VectorStore:    a.Vectors,
		Graph:          a.Graph,
		CollectionName: cfg.QdrantCollection,
		Ingester:       a.Ingester,
		Connectors:     a.Connectors,
	}
	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", server.Addr)
	slog.Debug("LLM configuration", "provider", cfg.LLMProvider, "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		slog.Error("API server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("API server stopped")
}

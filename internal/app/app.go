// Package app wires configuration into the stores, the fusion engine and the
// services shared by the API server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"wildmenipedia/internal/config"
	"wildmenipedia/internal/embedding"
	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/graphstore"
	"wildmenipedia/internal/ingest"
	"wildmenipedia/internal/llm"
	"wildmenipedia/internal/scrape"
	"wildmenipedia/internal/service"
	"wildmenipedia/internal/vectorstore"
)

// App holds the long-lived components built from a Config.
type App struct {
	Config     *config.Config
	Graph      graphstore.Store
	Vectors    *vectorstore.QdrantStore
	Embedder   embedding.Embedder
	Engine     fusion.Engine
	Fetcher    *scrape.Fetcher
	Answers    service.AnswerService
	Ingester   *ingest.Ingester
	Connectors []ingest.Connector

	redis *redis.Client
}

// SetupLogging installs the default slog logger for the configured level and format.
func SetupLogging(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
	return logger
}

// New opens the stores and builds the engine. An unreachable vector store is
// only logged: answers degrade to graph-less results until it comes back.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	graph, err := graphstore.Open(cfg.GraphURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph: %w", err)
	}
	a.Graph = graph
	slog.Info("Graph store opened", "url", cfg.GraphURL)

	vectors, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	a.Vectors = vectors
	if err := vectors.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		slog.Warn("Qdrant collection not ready", "collection", cfg.QdrantCollection, "error", err)
	} else {
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
	}

	embedder, err := a.newEmbedder()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Embedder = embedder

	opts := []fusion.Option{fusion.WithPolicy(cfg.Policy)}
	chat, err := llm.NewChatModel(cfg.LLMProvider, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	if chat != nil {
		opts = append(opts, fusion.WithAnswerWriter(llm.NewAnswerWriter(chat)))
		slog.Info("Answer writer enabled", "provider", cfg.LLMProvider, "model", cfg.LLMModel)
	}
	a.Engine = fusion.NewEngine(embedder, graph, vectors, opts...)

	a.Fetcher = scrape.NewFetcher(cfg.ScrapeOptions())
	a.Answers = service.NewAnswerService(a.Engine, a.Fetcher)

	a.Ingester = ingest.NewIngester(graph, vectors, embedder, cfg.QdrantCollection)
	wikidata := ingest.NewSPARQLClient(ingest.WikidataEndpoint, cfg.ScraperUserAgent, cfg.ScraperTimeout)
	dbpedia := ingest.NewSPARQLClient(ingest.DBpediaEndpoint, cfg.ScraperUserAgent, cfg.ScraperTimeout)
	a.Connectors = []ingest.Connector{ingest.NewWikidata(wikidata), ingest.NewDBpedia(dbpedia)}
	slog.Debug("Ingestion connectors ready", "wikidata", wikidata.Endpoint(), "dbpedia", dbpedia.Endpoint())
	return a, nil
}

// newEmbedder builds the configured embedder behind the in-process cache,
// shared through Redis when REDIS_URL is set.
func (a *App) newEmbedder() (embedding.Embedder, error) {
	cfg := a.Config
	base, err := embedding.New(cfg.EmbeddingOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	cacheOpts := []embedding.CacheOption{embedding.WithNamespace(cfg.QdrantCollection)}
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		a.redis = redis.NewClient(redisOpts)
		cacheOpts = append(cacheOpts, embedding.WithRedis(a.redis))
		slog.Info("Embedding cache shared through Redis", "addr", redisOpts.Addr)
	}
	return embedding.NewCachedEmbedder(base, cfg.EmbedCacheTTL, cacheOpts...), nil
}

// ConnectorFor returns the ingestion connector with the given name.
func (a *App) ConnectorFor(name string) (ingest.Connector, error) {
	for _, c := range a.Connectors {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w %q", service.ErrUnknownSource, name)
}

// Close releases every opened store.
func (a *App) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.redis != nil {
		keep(a.redis.Close())
	}
	if a.Vectors != nil {
		keep(a.Vectors.Close())
	}
	if a.Graph != nil {
		keep(a.Graph.Close())
	}
	return firstErr
}

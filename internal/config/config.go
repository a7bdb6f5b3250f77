package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"wildmenipedia/internal/embedding"
	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/scrape"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	GraphURL         string
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	EmbeddingProvider  string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string
	RedisURL           string
	EmbedCacheTTL      time.Duration

	LLMProvider string
	LLMBaseURL  string
	LLMModel    string
	LLMAPIKey   string

	ScraperUserAgent     string
	ScraperTimeout       time.Duration
	ScraperRPS           float64
	ScraperRespectRobots bool
	ScraperMaxSentences  int
	ScraperWorkers       int

	PolicyFile string
	Policy     fusion.Policy
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		GraphURL:           getEnv("GRAPH_URL", "sqlite://./data/wildmenipedia.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "entities"),
		EmbeddingProvider:  strings.ToLower(getEnv("EMBEDDING_PROVIDER", embedding.ProviderHash)),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", "local")),
		LLMBaseURL:         getEnv("LLM_BASE_URL", ""),
		LLMModel:           getEnv("LLM_MODEL", ""),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		ScraperUserAgent:   getEnv("SCRAPER_USER_AGENT", scrape.DefaultOptions().UserAgent),
		PolicyFile:         getEnv("FUSION_POLICY_FILE", ""),
	}
	cfg.EmbeddingAPIKey = getEnv("EMBEDDING_API_KEY", cfg.LLMAPIKey)

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	// Must match the output size of the embedding model; changing it requires recreating the collection.
	if cfg.QdrantVectorSize, err = getInt("QDRANT_VECTOR_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.QdrantVectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}

	if cfg.EmbedCacheTTL, err = getDuration("EMBED_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ScraperTimeout, err = getDuration("SCRAPER_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.ScraperRPS, err = getFloat("SCRAPER_RPS", 1); err != nil {
		return nil, err
	}
	if cfg.ScraperRespectRobots, err = getBool("SCRAPER_RESPECT_ROBOTS", true); err != nil {
		return nil, err
	}
	if cfg.ScraperMaxSentences, err = getInt("SCRAPER_MAX_SENTENCES", 5); err != nil {
		return nil, err
	}
	if cfg.ScraperWorkers, err = getInt("SCRAPER_WORKERS", 4); err != nil {
		return nil, err
	}

	cfg.Policy, err = LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}
	if os.Getenv("QDRANT_COLLECTION") != "" {
		cfg.Policy.EntitiesCollection = cfg.QdrantCollection
	} else {
		cfg.QdrantCollection = cfg.Policy.EntitiesCollection
	}

	return cfg, nil
}

// EmbeddingOptions returns the embedder settings.
func (c *Config) EmbeddingOptions() embedding.Options {
	return embedding.Options{
		Provider:  c.EmbeddingProvider,
		BaseURL:   c.EmbeddingBaseURL,
		APIKey:    c.EmbeddingAPIKey,
		Model:     c.EmbeddingModelName,
		Dimension: c.QdrantVectorSize,
	}
}

// ScrapeOptions returns the realtime fetcher settings.
func (c *Config) ScrapeOptions() scrape.Options {
	opts := scrape.DefaultOptions()
	opts.UserAgent = c.ScraperUserAgent
	opts.Timeout = c.ScraperTimeout
	opts.RPS = c.ScraperRPS
	opts.RespectRobots = c.ScraperRespectRobots
	opts.MaxSentences = c.ScraperMaxSentences
	opts.Workers = c.ScraperWorkers
	return opts
}

// loadDotEnv loads .env from the working directory or the closest parent (up to 5 levels).
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 15s: %w", key, err)
	}
	return v, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

// Package embedding provides text embedders for entity search and citation matching.
package embedding

import (
	"context"
	"fmt"
	"strings"
)

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Provider names accepted by New.
const (
	ProviderHash   = "hash"
	ProviderOpenAI = "openai"
)

// Options selects and configures an embedding backend.
type Options struct {
	Provider  string
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
}

// New returns the embedder for opts.Provider. An empty provider selects the hash embedder.
func New(opts Options) (Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderHash:
		return NewHashEmbedder(opts.Dimension), nil
	case ProviderOpenAI:
		if opts.BaseURL == "" && opts.APIKey == "" {
			return nil, fmt.Errorf("openai embedding provider requires EMBEDDING_BASE_URL or an API key")
		}
		if opts.Model == "" {
			return nil, fmt.Errorf("openai embedding provider requires EMBEDDING_MODEL_NAME")
		}
		return NewOpenAIEmbedder(opts.BaseURL, opts.APIKey, opts.Model, opts.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", opts.Provider)
	}
}

package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"wildmenipedia/internal/contextutil"
)

// CachedEmbedder memoizes embeddings in process memory and, when a Redis
// client is configured, in a shared Redis layer.
type CachedEmbedder struct {
	next      Embedder
	namespace string
	ttl       time.Duration
	memory    *gocache.Cache
	redis     *redis.Client
}

// CacheOption configures a CachedEmbedder.
type CacheOption func(*CachedEmbedder)

// WithRedis adds a shared Redis layer behind the in-process cache.
func WithRedis(client *redis.Client) CacheOption {
	return func(c *CachedEmbedder) {
		c.redis = client
	}
}

// WithNamespace separates cache entries of different models.
func WithNamespace(ns string) CacheOption {
	return func(c *CachedEmbedder) {
		c.namespace = ns
	}
}

// NewCachedEmbedder wraps next. ttl applies to both layers; 0 means no expiry.
func NewCachedEmbedder(next Embedder, ttl time.Duration, opts ...CacheOption) *CachedEmbedder {
	memTTL := ttl
	if memTTL <= 0 {
		memTTL = gocache.NoExpiration
	}
	c := &CachedEmbedder{
		next:      next,
		namespace: "default",
		ttl:       ttl,
		memory:    gocache.New(memTTL, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dimension forwards to the wrapped embedder when it reports one.
func (c *CachedEmbedder) Dimension() int {
	if d, ok := c.next.(interface{ Dimension() int }); ok {
		return d.Dimension()
	}
	return 0
}

// Embed returns the cached vector for text or computes and stores it.
// Redis errors are logged and otherwise ignored.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	logger := contextutil.LoggerFromContext(ctx)
	key := c.key(text)

	if v, found := c.memory.Get(key); found {
		return v.([]float32), nil
	}

	if c.redis != nil {
		raw, err := c.redis.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			vec, decodeErr := decodeVector(raw)
			if decodeErr == nil {
				c.memory.SetDefault(key, vec)
				return vec, nil
			}
			logger.WarnContext(ctx, "discarding corrupt cached embedding", "key", key, "error", decodeErr)
		case !errors.Is(err, redis.Nil):
			logger.WarnContext(ctx, "redis embedding cache read failed", "error", err)
		}
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.memory.SetDefault(key, vec)
	if c.redis != nil {
		if err := c.redis.Set(ctx, key, encodeVector(vec), c.ttl).Err(); err != nil {
			logger.WarnContext(ctx, "redis embedding cache write failed", "error", err)
		}
	}
	return vec, nil
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("wildmenipedia:emb:%s:%s", c.namespace, hex.EncodeToString(sum[:]))
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("invalid vector encoding of %d bytes", len(raw))
	}
	vec := make([]float32, len(raw)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return vec, nil
}

package embedding

import (
	"context"
	"crypto/sha256"
	"math"
)

// DefaultDimension is the vector size used when none is configured.
const DefaultDimension = 256

// HashEmbedder derives a deterministic vector from the sha256 digest of the text.
// It needs no external service and is the default for tests and local runs.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a hash embedder producing vectors of size dim.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashEmbedder{dim: dim}
}

// Dimension returns the vector size.
func (h *HashEmbedder) Dimension() int {
	return h.dim
}

// Embed repeats the digest bytes up to the dimension, scales them into [0,1]
// and L2-normalizes the result.
func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	digest := sha256.Sum256([]byte(text))

	values := make([]float64, h.dim)
	var norm float64
	for i := range values {
		values[i] = float64(digest[i%len(digest)]) / 255.0
		norm += values[i] * values[i]
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		norm = 1
	}
	vec := make([]float32, h.dim)
	for i, v := range values {
		vec[i] = float32(v / norm)
	}
	return vec, nil
}

package fusion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"unicode"

	"wildmenipedia/internal/vectorstore"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bagOfWordsEmbedder assigns each distinct token its own dimension, so two
// texts have positive similarity exactly when they share a token.
type bagOfWordsEmbedder struct {
	mu    sync.Mutex
	vocab map[string]int
	calls map[string]int
	fail  map[string]bool
	dim   int
}

func newBagOfWordsEmbedder() *bagOfWordsEmbedder {
	return &bagOfWordsEmbedder{
		vocab: map[string]int{},
		calls: map[string]int{},
		fail:  map[string]bool{},
		dim:   512,
	}
}

func (b *bagOfWordsEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls[text]++
	if b.fail[text] {
		return nil, errors.New("embedding backend down")
	}

	vec := make([]float32, b.dim)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		idx, ok := b.vocab[tok]
		if !ok {
			idx = len(b.vocab) % b.dim
			b.vocab[tok] = idx
		}
		vec[idx]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

func (b *bagOfWordsEmbedder) callCount(text string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[text]
}

type fakeGraph struct {
	mu        sync.Mutex
	relations map[string][]Triple
	fail      map[string]bool
	requested []string
}

func (g *fakeGraph) Neighbors(_ context.Context, nodeID string, limit int) ([]Triple, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requested = append(g.requested, nodeID)
	if g.fail[nodeID] {
		return nil, errors.New("graph unreachable")
	}
	return g.relations[nodeID], nil
}

type fakeVectors struct {
	results []vectorstore.SearchResult
	err     error
	calls   int
}

func (v *fakeVectors) Search(_ context.Context, _ string, _ []float32, k int, _ map[string]any) ([]vectorstore.SearchResult, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	if len(v.results) > k {
		return v.results[:k], nil
	}
	return v.results, nil
}

type panickingGraph struct{}

func (panickingGraph) Neighbors(context.Context, string, int) ([]Triple, error) {
	panic("driver bug")
}

package fusion

import (
	"context"
	"log/slog"
	"strings"

	"wildmenipedia/internal/contextutil"
	"wildmenipedia/internal/vectorstore"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks wildmenipedia/internal/fusion Engine,Embedder,Graph,VectorSearcher,AnswerWriter

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Graph reads outgoing relations of a node.
type Graph interface {
	Neighbors(ctx context.Context, nodeID string, limit int) ([]Triple, error)
}

// VectorSearcher is the subset of the vector store used by the resolver.
type VectorSearcher interface {
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]vectorstore.SearchResult, error)
}

// AnswerWriter produces a free-form answer from ranked facts, usually via an LLM.
type AnswerWriter interface {
	WriteAnswer(ctx context.Context, question string, facts []Fact, style Style) (string, error)
}

// Engine answers questions by fusing graph facts with vector search.
type Engine interface {
	// HybridAnswer always returns a well-formed result. Collaborator failures
	// are recorded in Degraded instead of being returned.
	HybridAnswer(ctx context.Context, req Request) HybridResult
}

// Option configures the engine.
type Option func(*hybridEngine)

// WithPolicy replaces the default policy. Invalid policies are ignored.
func WithPolicy(p Policy) Option {
	return func(e *hybridEngine) {
		if err := p.Validate(); err != nil {
			e.logger.Warn("ignoring invalid fusion policy", "error", err)
			return
		}
		e.policy = p
	}
}

// WithAnswerWriter sets the writer tried before the templated answer.
func WithAnswerWriter(w AnswerWriter) Option {
	return func(e *hybridEngine) {
		e.writer = w
	}
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(e *hybridEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

type hybridEngine struct {
	embedder Embedder
	graph    Graph
	vectors  VectorSearcher
	writer   AnswerWriter
	policy   Policy
	logger   *slog.Logger
}

// NewEngine creates a fusion engine. Any collaborator may be nil; its
// stage then contributes nothing.
func NewEngine(embedder Embedder, graph Graph, vectors VectorSearcher, opts ...Option) Engine {
	e := &hybridEngine{
		embedder: embedder,
		graph:    graph,
		vectors:  vectors,
		policy:   DefaultPolicy(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *hybridEngine) getLogger(ctx context.Context) *slog.Logger {
	if l := contextutil.LoggerFromContext(ctx); l != slog.Default() {
		return l
	}
	return e.logger
}

// HybridAnswer runs resolve, expand, score, attribute and compose for one question.
func (e *hybridEngine) HybridAnswer(ctx context.Context, req Request) HybridResult {
	logger := e.getLogger(ctx)

	topK := req.TopK
	if topK <= 0 {
		topK = e.policy.DefaultTopK
	}

	logger.InfoContext(ctx, "hybrid query started",
		"question", req.Question,
		"top_k", topK,
		"web_docs", len(req.WebDocs),
	)

	var failures []*StoreError

	r := &resolver{embedder: e.embedder, vectors: e.vectors, policy: e.policy}
	res, errs := r.resolve(ctx, logger, req.Question, topK)
	failures = append(failures, errs...)

	x := &expander{graph: e.graph, policy: e.policy}
	facts, errs := x.expand(ctx, logger, res.selected)
	failures = append(failures, errs...)

	facts = scoreFacts(facts, res.normalized, e.policy)

	a := &attributor{embedder: e.embedder, policy: e.policy}
	facts, errs = a.attribute(ctx, logger, facts, req.WebDocs)
	failures = append(failures, errs...)

	sources := projectSources(req.WebDocs)
	answer := e.answer(ctx, logger, req, facts, len(res.hits), len(sources))

	result := HybridResult{
		Answer:           answer,
		Facts:            nonNil(facts),
		VectorHits:       nonNil(res.hits),
		SelectedEntities: nonNil(res.selected),
		Sources:          sources,
		Confidence:       confidenceFor(len(sources)),
	}
	for _, f := range failures {
		result.Degraded = append(result.Degraded, f.degradation())
	}

	logger.InfoContext(ctx, "hybrid query completed",
		"facts", len(result.Facts),
		"vector_hits", len(result.VectorHits),
		"sources", len(result.Sources),
		"confidence", result.Confidence,
		"degraded", len(result.Degraded),
	)
	return result
}

// answer asks the writer first and falls back to the templated summary.
func (e *hybridEngine) answer(ctx context.Context, logger *slog.Logger, req Request, facts []Fact, hitCount, sourceCount int) string {
	if e.writer != nil {
		written := attempt("answer_writer", "write", "", func() (string, error) {
			return e.writer.WriteAnswer(ctx, req.Question, facts, req.Style)
		})
		if !written.OK() {
			logger.WarnContext(ctx, "answer writer failed, using template", "error", written.Err)
		} else if text := strings.TrimSpace(written.Value); text != "" {
			limit := req.Style.Length
			if limit < 50 {
				limit = 50
			}
			return clipWords(text, limit) + footnoteMarkers(e.policy, sourceCount)
		}
	}
	return Compose(e.policy, req.Style, len(facts), hitCount, sourceCount)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

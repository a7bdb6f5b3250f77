package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"wildmenipedia/internal/contextutil"
	"wildmenipedia/internal/storage"
	"wildmenipedia/internal/vectorstore"
)

// LabelPredicate is the self-edge predicate that stores an entity's label in the graph.
const LabelPredicate = "has_label"

// GraphWriter is the write side of the knowledge graph.
type GraphWriter interface {
	AddEntity(ctx context.Context, entity storage.Entity) error
	AddTriple(ctx context.Context, triple storage.Triple) error
}

// VectorWriter stores entity embeddings.
type VectorWriter interface {
	Upsert(ctx context.Context, collection string, points []vectorstore.Point) error
}

// Embedder turns entity labels into vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Stats summarizes one ingestion run.
type Stats struct {
	Source   string `json:"source"`
	Term     string `json:"term"`
	Labels   int    `json:"labels"`
	Triples  int    `json:"triples"`
	Skipped  int    `json:"skipped"`
	Embedded int    `json:"embedded"`
	Resolved string `json:"resolved,omitempty"`
}

// Ingester writes search results and the relations of the best match into the stores.
type Ingester struct {
	graph       GraphWriter
	vectors     VectorWriter
	embedder    Embedder
	collection  string
	tripleLimit int
	logger      *slog.Logger
}

// NewIngester creates an Ingester. vectors and embedder may be nil, in which
// case entities are only written to the graph.
func NewIngester(graph GraphWriter, vectors VectorWriter, embedder Embedder, collection string) *Ingester {
	return &Ingester{
		graph:       graph,
		vectors:     vectors,
		embedder:    embedder,
		collection:  collection,
		tripleLimit: 200,
		logger:      slog.Default(),
	}
}

// WithTripleLimit overrides how many relations are read for the resolved entity.
func (i *Ingester) WithTripleLimit(n int) *Ingester {
	if n > 0 {
		i.tripleLimit = n
	}
	return i
}

func (i *Ingester) getLogger(ctx context.Context) *slog.Logger {
	if ctxLogger := contextutil.LoggerFromContext(ctx); ctxLogger != slog.Default() {
		return ctxLogger
	}
	return i.logger
}

// Ingest searches conn for term, stores up to limit labelled entities, then
// resolves the term to the first hit and stores its outgoing relations.
func (i *Ingester) Ingest(ctx context.Context, conn Connector, term string, limit int) (*Stats, error) {
	logger := i.getLogger(ctx).With("source", conn.Name(), "term", term)
	stats := &Stats{Source: conn.Name(), Term: term}

	labels, err := conn.Search(ctx, term, limit)
	if err != nil {
		return stats, fmt.Errorf("failed to search %s: %w", conn.Name(), err)
	}
	logger.InfoContext(ctx, "label search completed", "hits", len(labels))

	points := make([]vectorstore.Point, 0, len(labels))
	var resolved string
	for _, l := range labels {
		id, label := strings.TrimSpace(l.ID), strings.TrimSpace(l.Label)
		if id == "" || label == "" {
			stats.Skipped++
			continue
		}
		if err := i.graph.AddEntity(ctx, storage.Entity{ID: id, Label: label, Source: conn.Name()}); err != nil {
			return stats, fmt.Errorf("failed to store entity %s: %w", id, err)
		}
		selfEdge := storage.Triple{Subject: id, Predicate: LabelPredicate, Object: id, ObjectLabel: label}
		if err := i.graph.AddTriple(ctx, selfEdge); err != nil {
			return stats, fmt.Errorf("failed to store label of %s: %w", id, err)
		}
		stats.Labels++
		if resolved == "" {
			resolved = id
		}

		if i.embedder == nil || i.vectors == nil {
			continue
		}
		vec, err := i.embedder.Embed(ctx, label)
		if err != nil {
			logger.WarnContext(ctx, "failed to embed entity label", "entity_id", id, "error", err)
			continue
		}
		points = append(points, vectorstore.EntityPoint(id, label, vec))
	}

	if len(points) > 0 {
		if err := i.vectors.Upsert(ctx, i.collection, points); err != nil {
			return stats, fmt.Errorf("failed to upsert entity vectors: %w", err)
		}
		stats.Embedded = len(points)
	}

	if resolved == "" {
		logger.InfoContext(ctx, "no usable label hits, skipping relations", "skipped", stats.Skipped)
		return stats, nil
	}

	stats.Resolved = resolved
	triples, err := conn.Triples(ctx, resolved, i.tripleLimit)
	if err != nil {
		return stats, fmt.Errorf("failed to read relations of %s: %w", resolved, err)
	}

	for _, t := range triples {
		t.Subject = strings.TrimSpace(t.Subject)
		t.Predicate = strings.TrimSpace(t.Predicate)
		t.Object = strings.TrimSpace(t.Object)
		if t.Subject == "" || t.Predicate == "" || t.Object == "" {
			stats.Skipped++
			continue
		}
		if err := i.graph.AddTriple(ctx, t); err != nil {
			return stats, fmt.Errorf("failed to store relation %s %s: %w", t.Subject, t.Predicate, err)
		}
		stats.Triples++
	}

	logger.InfoContext(ctx, "ingestion completed",
		"labels", stats.Labels,
		"triples", stats.Triples,
		"embedded", stats.Embedded,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

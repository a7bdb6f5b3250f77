// Package graphstore selects and wraps the knowledge-graph backend.
package graphstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks wildmenipedia/internal/graphstore Store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/storage"
)

// Store is a knowledge graph that can be read by the fusion engine and
// written by ingestion.
type Store interface {
	// Neighbors returns up to limit outgoing relations of nodeID.
	Neighbors(ctx context.Context, nodeID string, limit int) ([]fusion.Triple, error)
	// AddEntity creates the node or updates its label.
	AddEntity(ctx context.Context, entity storage.Entity) error
	// AddTriple creates the relation or refreshes its metadata.
	AddTriple(ctx context.Context, triple storage.Triple) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend connection.
	Close() error
}

// Open returns the store for a graph URL:
//
//	sqlite:///abs/path.db, sqlite://./relative.db
//	falkordb://host:port/graph_name
func Open(graphURL string) (Store, error) {
	switch {
	case strings.HasPrefix(graphURL, "sqlite://"):
		path := strings.TrimPrefix(graphURL, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("invalid graph URL %q: missing database path", graphURL)
		}
		g, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return g, nil
	case strings.HasPrefix(graphURL, "falkordb://"):
		g, err := NewFalkorDBGraph(graphURL)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		u, err := url.Parse(graphURL)
		if err == nil && u.Scheme != "" {
			return nil, fmt.Errorf("unsupported graph URL scheme %q", u.Scheme)
		}
		return nil, fmt.Errorf("unsupported graph URL %q: only sqlite:// and falkordb:// are supported", graphURL)
	}
}

// toFusion converts stored relations into the fusion engine's triple type.
func toFusion(triples []storage.Triple) []fusion.Triple {
	out := make([]fusion.Triple, 0, len(triples))
	for _, t := range triples {
		out = append(out, fusion.Triple{
			Subject:   t.Subject,
			Predicate: t.Predicate,
			Object:    t.Object,
			Meta: fusion.Meta{
				Rank:           fusion.Rank(t.Rank),
				PredCode:       t.PredCode,
				ObjectLabel:    t.ObjectLabel,
				PredicateLabel: t.PredicateLabel,
			},
		})
	}
	return out
}

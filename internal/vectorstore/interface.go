package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks wildmenipedia/internal/vectorstore VectorStore

import (
	"context"

	"github.com/google/uuid"
)

// entityNamespace scopes the deterministic point ids derived from entity ids.
var entityNamespace = uuid.MustParse("6f1d8c0e-4b7a-5e2f-9a31-7c2d0b8e4f15")

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search with optional exact-match filters.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// CollectionExists reports whether the collection has been created.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// PointIDFor maps an entity id such as "E:Q42" to a stable UUID point id.
// Re-ingesting the same entity overwrites its point instead of duplicating it.
func PointIDFor(entityID string) string {
	return uuid.NewSHA1(entityNamespace, []byte(entityID)).String()
}

// EntityPoint builds the point stored for an entity. The payload always
// carries the entity id under "id" so search hits can be mapped back to graph nodes.
func EntityPoint(entityID, label string, vec []float32) Point {
	meta := map[string]any{"id": entityID}
	if label != "" {
		meta["label"] = label
	}
	return Point{ID: PointIDFor(entityID), Vec: vec, Meta: meta}
}

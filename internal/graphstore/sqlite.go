package graphstore

import (
	"context"
	"database/sql"
	"fmt"

	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/storage"
)

// SQLiteGraph stores the knowledge graph in the local SQLite database.
type SQLiteGraph struct {
	db       *sql.DB
	entities *storage.EntityRepo
	triples  *storage.TripleRepo
}

// OpenSQLite opens and migrates the database at path.
func OpenSQLite(path string) (*SQLiteGraph, error) {
	db, err := storage.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate graph database: %w", err)
	}
	return NewSQLiteGraph(db), nil
}

// NewSQLiteGraph wraps an already migrated database.
func NewSQLiteGraph(db *sql.DB) *SQLiteGraph {
	return &SQLiteGraph{
		db:       db,
		entities: storage.NewEntityRepo(db),
		triples:  storage.NewTripleRepo(db),
	}
}

// Neighbors returns up to limit outgoing relations of nodeID.
func (g *SQLiteGraph) Neighbors(ctx context.Context, nodeID string, limit int) ([]fusion.Triple, error) {
	triples, err := g.triples.Outgoing(ctx, nodeID, limit)
	if err != nil {
		return nil, err
	}
	return toFusion(triples), nil
}

// AddEntity creates the node or updates its label.
func (g *SQLiteGraph) AddEntity(ctx context.Context, entity storage.Entity) error {
	return g.entities.Upsert(ctx, entity)
}

// AddTriple creates the relation or refreshes its metadata.
func (g *SQLiteGraph) AddTriple(ctx context.Context, triple storage.Triple) error {
	return g.triples.Upsert(ctx, triple)
}

// Entities exposes the entity repository for label lookups.
func (g *SQLiteGraph) Entities() storage.EntityStore {
	return g.entities
}

// Ping checks that the database is reachable.
func (g *SQLiteGraph) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

// Close closes the database.
func (g *SQLiteGraph) Close() error {
	return g.db.Close()
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EntityStore defines the interface for entity storage operations.
type EntityStore interface {
	// Upsert inserts an entity or updates its label and source.
	Upsert(ctx context.Context, entity Entity) error
	// GetByID gets an entity by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (Entity, error)
	// SearchByLabel returns entities whose label contains query, case-insensitively.
	SearchByLabel(ctx context.Context, query string, limit int) ([]Entity, error)
	// Count returns the number of stored entities.
	Count(ctx context.Context) (int, error)
}

// EntityRepo provides methods for entity operations.
// It implements the EntityStore interface.
type EntityRepo struct {
	db *sql.DB
}

// NewEntityRepo creates a new EntityRepo.
func NewEntityRepo(db *sql.DB) *EntityRepo {
	return &EntityRepo{db: db}
}

// Upsert inserts an entity or updates its label and source.
// An empty label never overwrites a known one.
func (r *EntityRepo) Upsert(ctx context.Context, entity Entity) error {
	if strings.TrimSpace(entity.ID) == "" {
		return fmt.Errorf("entity id is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entities (id, label, source, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			label = CASE WHEN excluded.label != '' THEN excluded.label ELSE entities.label END,
			source = CASE WHEN excluded.source != '' THEN excluded.source ELSE entities.source END,
			updated_at = CURRENT_TIMESTAMP`,
		entity.ID, entity.Label, entity.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entity: %w", err)
	}
	return nil
}

// GetByID gets an entity by its ID. Returns ErrNotFound if not found.
func (r *EntityRepo) GetByID(ctx context.Context, id string) (Entity, error) {
	var (
		entity    Entity
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, label, source, updated_at FROM entities WHERE id = ?", id,
	).Scan(&entity.ID, &entity.Label, &entity.Source, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, ErrNotFound
	}
	if err != nil {
		return Entity{}, fmt.Errorf("failed to get entity: %w", err)
	}
	entity.UpdatedAt = parseTimestamp(updatedAt)
	return entity, nil
}

// SearchByLabel returns entities whose label contains query, case-insensitively,
// ordered by label length so closer matches come first.
func (r *EntityRepo) SearchByLabel(ctx context.Context, query string, limit int) ([]Entity, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, label, source, updated_at FROM entities
		WHERE label != '' AND instr(lower(label), lower(?)) > 0
		ORDER BY length(label), id
		LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search entities: %w", err)
	}
	defer rows.Close()

	entities := []Entity{}
	for rows.Next() {
		var (
			entity    Entity
			updatedAt string
		)
		if err := rows.Scan(&entity.ID, &entity.Label, &entity.Source, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entity.UpdatedAt = parseTimestamp(updatedAt)
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}
	return entities, nil
}

// Count returns the number of stored entities.
func (r *EntityRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entities").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}
	return n, nil
}

// parseTimestamp parses a SQLite DATETIME string, returning the zero time on failure.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// TripleStore defines the interface for relation storage operations.
type TripleStore interface {
	// Upsert inserts a triple or refreshes its metadata.
	Upsert(ctx context.Context, triple Triple) error
	// Outgoing returns up to limit relations whose subject is nodeID, in insertion order.
	Outgoing(ctx context.Context, nodeID string, limit int) ([]Triple, error)
	// Count returns the number of stored triples.
	Count(ctx context.Context) (int, error)
}

// TripleRepo provides methods for triple operations.
// It implements the TripleStore interface.
type TripleRepo struct {
	db *sql.DB
}

// NewTripleRepo creates a new TripleRepo.
func NewTripleRepo(db *sql.DB) *TripleRepo {
	return &TripleRepo{db: db}
}

// Upsert inserts a triple or refreshes its metadata. Non-empty metadata
// replaces stored values; empty metadata keeps them.
func (r *TripleRepo) Upsert(ctx context.Context, t Triple) error {
	if strings.TrimSpace(t.Subject) == "" || strings.TrimSpace(t.Predicate) == "" || strings.TrimSpace(t.Object) == "" {
		return ErrInvalidTriple
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO triples (subject, predicate, object, rank, pred_code, object_label, predicate_label)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(subject, predicate, object) DO UPDATE SET
			rank = CASE WHEN excluded.rank != '' THEN excluded.rank ELSE triples.rank END,
			pred_code = CASE WHEN excluded.pred_code != '' THEN excluded.pred_code ELSE triples.pred_code END,
			object_label = CASE WHEN excluded.object_label != '' THEN excluded.object_label ELSE triples.object_label END,
			predicate_label = CASE WHEN excluded.predicate_label != '' THEN excluded.predicate_label ELSE triples.predicate_label END`,
		t.Subject, t.Predicate, t.Object, t.Rank, t.PredCode, t.ObjectLabel, t.PredicateLabel,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert triple: %w", err)
	}
	return nil
}

// Outgoing returns up to limit relations whose subject is nodeID, in insertion order.
// Returns an empty slice if the node has no relations (not an error).
func (r *TripleRepo) Outgoing(ctx context.Context, nodeID string, limit int) ([]Triple, error) {
	if limit <= 0 {
		return []Triple{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT subject, predicate, object, rank, pred_code, object_label, predicate_label
		FROM triples WHERE subject = ? ORDER BY id LIMIT ?`,
		nodeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query triples: %w", err)
	}
	defer rows.Close()

	triples := []Triple{}
	for rows.Next() {
		var t Triple
		if err := rows.Scan(&t.Subject, &t.Predicate, &t.Object, &t.Rank, &t.PredCode, &t.ObjectLabel, &t.PredicateLabel); err != nil {
			return nil, fmt.Errorf("failed to scan triple: %w", err)
		}
		triples = append(triples, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate triples: %w", err)
	}
	return triples, nil
}

// Count returns the number of stored triples.
func (r *TripleRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM triples").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count triples: %w", err)
	}
	return n, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestTripleRepo_UpsertAndOutgoing(t *testing.T) {
	repo := NewTripleRepo(newTestDB(t))
	ctx := context.Background()

	triples := []Triple{
		{Subject: "E:Q1", Predicate: "instance_of", Object: "E:Q5", Rank: "preferred", PredCode: "P31", ObjectLabel: "human"},
		{Subject: "E:Q1", Predicate: "educated_at", Object: "E:Q2", PredCode: "P69"},
		{Subject: "E:Q2", Predicate: "instance_of", Object: "E:Q3918"},
	}
	for _, tr := range triples {
		if err := repo.Upsert(ctx, tr); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	got, err := repo.Outgoing(ctx, "E:Q1", 10)
	if err != nil {
		t.Fatalf("Outgoing() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Outgoing() returned %d triples, want 2", len(got))
	}
	if got[0] != triples[0] || got[1] != triples[1] {
		t.Errorf("Outgoing() = %+v, want insertion order", got)
	}
}

func TestTripleRepo_UpsertMergesMetadata(t *testing.T) {
	repo := NewTripleRepo(newTestDB(t))
	ctx := context.Background()

	_ = repo.Upsert(ctx, Triple{Subject: "A", Predicate: "p", Object: "B", ObjectLabel: "Bee"})
	_ = repo.Upsert(ctx, Triple{Subject: "A", Predicate: "p", Object: "B", Rank: "preferred"})

	got, _ := repo.Outgoing(ctx, "A", 10)
	if len(got) != 1 {
		t.Fatalf("duplicate triple stored: %+v", got)
	}
	if got[0].Rank != "preferred" || got[0].ObjectLabel != "Bee" {
		t.Errorf("metadata not merged: %+v", got[0])
	}
}

func TestTripleRepo_UpsertRejectsIncomplete(t *testing.T) {
	repo := NewTripleRepo(newTestDB(t))
	tests := []Triple{
		{Predicate: "p", Object: "o"},
		{Subject: "s", Object: "o"},
		{Subject: "s", Predicate: "p", Object: "  "},
	}
	for _, tr := range tests {
		if err := repo.Upsert(context.Background(), tr); !errors.Is(err, ErrInvalidTriple) {
			t.Errorf("Upsert(%+v) error = %v, want ErrInvalidTriple", tr, err)
		}
	}
}

func TestTripleRepo_OutgoingLimit(t *testing.T) {
	repo := NewTripleRepo(newTestDB(t))
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_ = repo.Upsert(ctx, Triple{Subject: "S", Predicate: "related_to", Object: fmt.Sprintf("O%d", i)})
	}

	got, err := repo.Outgoing(ctx, "S", 10)
	if err != nil {
		t.Fatalf("Outgoing() error = %v", err)
	}
	if len(got) != 10 {
		t.Errorf("Outgoing() returned %d, want 10", len(got))
	}

	none, err := repo.Outgoing(ctx, "unknown", 10)
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("Outgoing() for unknown node = %#v, %v", none, err)
	}

	n, _ := repo.Count(ctx)
	if n != 12 {
		t.Errorf("Count() = %d, want 12", n)
	}
}

package graphstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/alicebob/miniredis/v2/server"
	"github.com/redis/go-redis/v9"

	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/storage"
)

// fakeFalkor answers GRAPH.QUERY on a miniredis server with canned rows.
type fakeFalkor struct {
	mu      sync.Mutex
	queries []string
	graphs  []string
	rows    [][]*string
}

func (f *fakeFalkor) handle(c *server.Peer, _ string, args []string) {
	if len(args) < 2 {
		c.WriteError("ERR wrong number of arguments")
		return
	}
	f.mu.Lock()
	f.graphs = append(f.graphs, args[0])
	f.queries = append(f.queries, args[1])
	rows := f.rows
	f.mu.Unlock()

	if !strings.HasPrefix(args[1], "MATCH") {
		c.WriteLen(1)
		c.WriteLen(1)
		c.WriteBulk("Nodes created: 1")
		return
	}

	c.WriteLen(3)
	c.WriteLen(7)
	for _, h := range []string{"s.id", "r.predicate", "o.id", "r.rank", "r.pred_code", "r.object_label", "r.predicate_label"} {
		c.WriteBulk(h)
	}
	c.WriteLen(len(rows))
	for _, row := range rows {
		c.WriteLen(len(row))
		for _, v := range row {
			if v == nil {
				c.WriteNull()
			} else {
				c.WriteBulk(*v)
			}
		}
	}
	c.WriteLen(1)
	c.WriteBulk("Query internal execution time: 0.1 milliseconds")
}

func str(s string) *string {
	return &s
}

func newFakeFalkor(t *testing.T) (*fakeFalkor, *FalkorDBGraph) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	fake := &fakeFalkor{}
	if err := mr.Server().Register("GRAPH.QUERY", fake.handle); err != nil {
		t.Fatalf("failed to register GRAPH.QUERY: %v", err)
	}

	g := NewFalkorDBGraphWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "kg")
	t.Cleanup(func() {
		_ = g.Close()
	})
	return fake, g
}

func TestFalkorDBGraph_Neighbors(t *testing.T) {
	fake, g := newFakeFalkor(t)
	fake.rows = [][]*string{
		{str("E:Q1"), str("instance_of"), str("E:Q5"), str("preferred"), str("P31"), str("human"), nil},
		{str("E:Q1"), str("educated_at"), str("E:Q2"), nil, nil, nil, nil},
		{str("E:Q1"), nil, str("E:Q3"), nil, nil, nil, nil},
	}

	got, err := g.Neighbors(context.Background(), "E:Q1", 10)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}

	want := []fusion.Triple{
		{Subject: "E:Q1", Predicate: "instance_of", Object: "E:Q5", Meta: fusion.Meta{Rank: fusion.RankPreferred, PredCode: "P31", ObjectLabel: "human"}},
		{Subject: "E:Q1", Predicate: "educated_at", Object: "E:Q2"},
	}
	if len(got) != len(want) {
		t.Fatalf("Neighbors() returned %d triples, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triple %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	q := fake.queries[0]
	if !strings.Contains(q, "{id: 'E:Q1'}") || !strings.Contains(q, "LIMIT 10") {
		t.Errorf("unexpected query: %s", q)
	}
	if fake.graphs[0] != "kg" {
		t.Errorf("graph name = %s, want kg", fake.graphs[0])
	}
}

func TestFalkorDBGraph_Writes(t *testing.T) {
	fake, g := newFakeFalkor(t)
	ctx := context.Background()

	if err := g.AddEntity(ctx, storage.Entity{ID: "E:Q1", Label: "O'Brien"}); err != nil {
		t.Fatalf("AddEntity() error = %v", err)
	}
	if err := g.AddTriple(ctx, storage.Triple{Subject: "E:Q1", Predicate: "has_label", Object: "E:Q1", ObjectLabel: "O'Brien"}); err != nil {
		t.Fatalf("AddTriple() error = %v", err)
	}

	if len(fake.queries) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(fake.queries))
	}
	if !strings.Contains(fake.queries[0], `n.label = 'O\'Brien'`) {
		t.Errorf("label not escaped: %s", fake.queries[0])
	}
	if !strings.Contains(fake.queries[1], "MERGE (s)-[r:REL {predicate: 'has_label'}]->(o)") {
		t.Errorf("unexpected triple query: %s", fake.queries[1])
	}
	if strings.Contains(fake.queries[1], "r.rank") {
		t.Errorf("empty metadata should not be set: %s", fake.queries[1])
	}
}

func TestFalkorDBGraph_RejectsIncompleteTriple(t *testing.T) {
	_, g := newFakeFalkor(t)
	err := g.AddTriple(context.Background(), storage.Triple{Subject: "E:Q1", Object: "E:Q2"})
	if !errors.Is(err, storage.ErrInvalidTriple) {
		t.Errorf("AddTriple() error = %v, want ErrInvalidTriple", err)
	}
}

func TestFalkorDBGraph_Ping(t *testing.T) {
	_, g := newFakeFalkor(t)
	if err := g.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestNewFalkorDBGraph(t *testing.T) {
	g, err := NewFalkorDBGraph("falkordb://:secret@localhost:6379")
	if err != nil {
		t.Fatalf("NewFalkorDBGraph() error = %v", err)
	}
	defer g.Close()
	if g.graphName != defaultFalkorGraph {
		t.Errorf("graph name = %s, want %s", g.graphName, defaultFalkorGraph)
	}
}

func TestParseRows(t *testing.T) {
	if _, err := parseRows("OK"); err == nil {
		t.Error("expected error for non-array reply")
	}
	rows, err := parseRows([]any{[]any{"Nodes created: 1"}})
	if err != nil || rows != nil {
		t.Errorf("write reply = %v, %v", rows, err)
	}
	if _, err := parseRows([]any{1, 2}); err == nil {
		t.Error("expected error for unexpected reply length")
	}
}

func TestCypherString(t *testing.T) {
	tests := map[string]string{
		"plain":     "'plain'",
		"it's":      `'it\'s'`,
		`back\dash`: `'back\\dash'`,
	}
	for in, want := range tests {
		if got := cypherString(in); got != want {
			t.Errorf("cypherString(%q) = %s, want %s", in, got, want)
		}
	}
}

package fusion

import (
	"context"
	"errors"
	"math"
	"testing"

	"wildmenipedia/internal/vectorstore"
)

func TestResolveNormalizesByMaxScore(t *testing.T) {
	vectors := &fakeVectors{results: []vectorstore.SearchResult{
		{PointID: "p1", Score: 0.8, Meta: map[string]any{"id": "E:Q1"}},
		{PointID: "p2", Score: 0.4, Meta: map[string]any{"entity_id": "E:Q2"}},
	}}
	r := &resolver{embedder: newBagOfWordsEmbedder(), vectors: vectors, policy: DefaultPolicy()}

	res, failures := r.resolve(context.Background(), discardLogger(), "alan turing", 5)
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}

	want := map[string]float64{"E:Q1": 1.0, "E:Q2": 0.5}
	for id, norm := range want {
		if math.Abs(res.normalized[id]-norm) > 1e-6 {
			t.Errorf("normalized[%s] = %f, want %f", id, res.normalized[id], norm)
		}
	}
	if len(res.selected) != 2 || res.selected[0] != "E:Q1" || res.selected[1] != "E:Q2" {
		t.Errorf("selected = %v, want [E:Q1 E:Q2]", res.selected)
	}
	if len(res.hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(res.hits))
	}
	if res.hits[0].Score != 0.8 {
		t.Errorf("hits must keep raw scores, got %f", res.hits[0].Score)
	}
}

func TestResolveDropsHitsWithoutEntityID(t *testing.T) {
	vectors := &fakeVectors{results: []vectorstore.SearchResult{
		{PointID: "p1", Score: 0.9, Meta: map[string]any{"label": "no id here"}},
		{PointID: "p2", Score: 0.3, Meta: map[string]any{"id": "E:Q7"}},
	}}
	r := &resolver{embedder: newBagOfWordsEmbedder(), vectors: vectors, policy: DefaultPolicy()}

	res, _ := r.resolve(context.Background(), discardLogger(), "q", 5)

	if len(res.selected) != 1 || res.selected[0] != "E:Q7" {
		t.Fatalf("selected = %v, want [E:Q7]", res.selected)
	}
	if res.normalized["E:Q7"] != 1.0 {
		t.Errorf("remaining hit should normalize to 1.0, got %f", res.normalized["E:Q7"])
	}
}

func TestResolveFallsBackToQuery(t *testing.T) {
	tests := []struct {
		name         string
		vectors      *fakeVectors
		wantFailures int
	}{
		{
			name:    "empty result",
			vectors: &fakeVectors{},
		},
		{
			name:         "store unavailable",
			vectors:      &fakeVectors{err: errors.New("connection refused")},
			wantFailures: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &resolver{embedder: newBagOfWordsEmbedder(), vectors: tt.vectors, policy: DefaultPolicy()}
			res, failures := r.resolve(context.Background(), discardLogger(), "E:Q1", 5)

			if len(failures) != tt.wantFailures {
				t.Fatalf("failures = %d, want %d", len(failures), tt.wantFailures)
			}
			if len(res.selected) != 1 || res.selected[0] != "E:Q1" {
				t.Errorf("selected = %v, want [E:Q1]", res.selected)
			}
			if len(res.normalized) != 0 {
				t.Errorf("normalized should be empty, got %v", res.normalized)
			}
			if len(res.hits) != 0 {
				t.Errorf("hits should be empty, got %v", res.hits)
			}
		})
	}
}

func TestResolveEmbeddingFailureSkipsSearch(t *testing.T) {
	embedder := newBagOfWordsEmbedder()
	embedder.fail["who"] = true
	vectors := &fakeVectors{}
	r := &resolver{embedder: embedder, vectors: vectors, policy: DefaultPolicy()}

	res, failures := r.resolve(context.Background(), discardLogger(), "who", 5)

	if vectors.calls != 0 {
		t.Errorf("search should not run without a query vector")
	}
	if len(failures) != 1 || failures[0].Store != "embedder" {
		t.Fatalf("expected one embedder failure, got %v", failures)
	}
	if !errors.Is(failures[0], ErrStoreUnavailable) {
		t.Errorf("store errors should match ErrStoreUnavailable")
	}
	if len(res.selected) != 1 || res.selected[0] != "who" {
		t.Errorf("selected = %v, want [who]", res.selected)
	}
}

func TestResolveClampsNonPositiveScores(t *testing.T) {
	vectors := &fakeVectors{results: []vectorstore.SearchResult{
		{PointID: "p1", Score: 0, Meta: map[string]any{"id": "E:Q1"}},
		{PointID: "p2", Score: -0.2, Meta: map[string]any{"id": "E:Q2"}},
	}}
	r := &resolver{embedder: newBagOfWordsEmbedder(), vectors: vectors, policy: DefaultPolicy()}

	res, _ := r.resolve(context.Background(), discardLogger(), "q", 5)

	for id, norm := range res.normalized {
		if norm != 0 {
			t.Errorf("normalized[%s] = %f, want 0 when max score is not positive", id, norm)
		}
	}
}

func TestResolveRespectsTopK(t *testing.T) {
	vectors := &fakeVectors{results: []vectorstore.SearchResult{
		{PointID: "p1", Score: 0.9, Meta: map[string]any{"id": "A"}},
		{PointID: "p2", Score: 0.8, Meta: map[string]any{"id": "B"}},
		{PointID: "p3", Score: 0.7, Meta: map[string]any{"id": "C"}},
	}}
	r := &resolver{embedder: newBagOfWordsEmbedder(), vectors: vectors, policy: DefaultPolicy()}

	res, _ := r.resolve(context.Background(), discardLogger(), "q", 2)

	if len(res.hits) != 2 {
		t.Errorf("expected 2 hits, got %d", len(res.hits))
	}
}

func TestPayloadEntityID(t *testing.T) {
	tests := []struct {
		payload map[string]any
		want    string
	}{
		{map[string]any{"id": "E:Q1"}, "E:Q1"},
		{map[string]any{"entity_id": "E:Q2"}, "E:Q2"},
		{map[string]any{"id": "", "entity_id": "E:Q3"}, "E:Q3"},
		{map[string]any{"id": int64(42)}, "42"},
		{map[string]any{"label": "x"}, ""},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := payloadEntityID(tt.payload); got != tt.want {
			t.Errorf("payloadEntityID(%v) = %q, want %q", tt.payload, got, tt.want)
		}
	}
}

package fusion

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"wildmenipedia/internal/vectorstore"
)

// resolution is the outcome of candidate resolution for one query.
type resolution struct {
	hits       []VectorHit
	selected   []string
	normalized map[string]float64
}

type resolver struct {
	embedder Embedder
	vectors  VectorSearcher
	policy   Policy
}

// resolve embeds the query and searches the entities collection. When the
// vector side yields nothing, the raw query is used as the only candidate.
func (r *resolver) resolve(ctx context.Context, logger *slog.Logger, query string, topK int) (resolution, []*StoreError) {
	var failures []*StoreError
	res := resolution{normalized: map[string]float64{}}

	embedded := attempt("embedder", "embed", "query", func() ([]float32, error) {
		if r.embedder == nil {
			return nil, fmt.Errorf("no embedder configured")
		}
		return r.embedder.Embed(ctx, query)
	})

	var raw []vectorstore.SearchResult
	if embedded.OK() {
		searched := attempt("vector_store", "search", r.policy.EntitiesCollection, func() ([]vectorstore.SearchResult, error) {
			if r.vectors == nil {
				return nil, fmt.Errorf("no vector store configured")
			}
			return r.vectors.Search(ctx, r.policy.EntitiesCollection, embedded.Value, topK, nil)
		})
		if !searched.OK() {
			failures = append(failures, searched.Err)
		}
		raw = searched.OrEmpty()
	} else {
		failures = append(failures, embedded.Err)
	}

	for _, hit := range raw {
		id := payloadEntityID(hit.Meta)
		if id == "" {
			logger.DebugContext(ctx, "vector hit without entity id", "point_id", hit.PointID)
			continue
		}
		res.hits = append(res.hits, VectorHit{ID: id, Score: hit.Score, Payload: hit.Meta})
	}

	sort.SliceStable(res.hits, func(i, j int) bool {
		return res.hits[i].Score > res.hits[j].Score
	})
	if len(res.hits) > topK {
		res.hits = res.hits[:topK]
	}

	if len(res.hits) == 0 {
		logger.InfoContext(ctx, "no vector candidates, using query as node id", "query", query)
		res.selected = []string{query}
		return res, failures
	}

	maxScore := float64(res.hits[0].Score)
	seen := make(map[string]bool, len(res.hits))
	for _, hit := range res.hits {
		norm := 0.0
		if maxScore > 0 {
			norm = clamp01(float64(hit.Score) / maxScore)
		}
		if prev, ok := res.normalized[hit.ID]; !ok || norm > prev {
			res.normalized[hit.ID] = norm
		}
		if !seen[hit.ID] {
			seen[hit.ID] = true
			res.selected = append(res.selected, hit.ID)
		}
	}

	return res, failures
}

// payloadEntityID reads the canonical graph node id from a hit payload.
func payloadEntityID(payload map[string]any) string {
	for _, key := range []string{"id", "entity_id"} {
		if v, ok := payload[key]; ok {
			switch id := v.(type) {
			case string:
				if id != "" {
					return id
				}
			case int64, int, float64:
				return fmt.Sprintf("%v", id)
			}
		}
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package fusion

import (
	"context"
	"fmt"
	"log/slog"
)

type expander struct {
	graph  Graph
	policy Policy
}

// expand reads the outgoing relations of the first CandidateCap candidates.
// A failing candidate contributes no facts.
func (x *expander) expand(ctx context.Context, logger *slog.Logger, candidates []string) ([]Fact, []*StoreError) {
	if len(candidates) > x.policy.CandidateCap {
		candidates = candidates[:x.policy.CandidateCap]
	}

	var (
		facts    []Fact
		failures []*StoreError
	)
	for _, candidate := range candidates {
		neighbors := attempt("graph", "neighbors", candidate, func() ([]Triple, error) {
			if x.graph == nil {
				return nil, fmt.Errorf("no graph store configured")
			}
			return x.graph.Neighbors(ctx, candidate, x.policy.NeighborCap)
		})
		if !neighbors.OK() {
			logger.WarnContext(ctx, "graph expansion failed", "candidate", candidate, "error", neighbors.Err)
			failures = append(failures, neighbors.Err)
			continue
		}

		triples := neighbors.Value
		if len(triples) > x.policy.NeighborCap {
			triples = triples[:x.policy.NeighborCap]
		}
		for _, t := range triples {
			facts = append(facts, Fact{
				Subject:   t.Subject,
				Predicate: t.Predicate,
				Object:    t.Object,
				Meta:      t.Meta,
				candidate: candidate,
			})
		}
		logger.DebugContext(ctx, "expanded candidate", "candidate", candidate, "relations", len(triples))
	}

	return facts, failures
}

package fusion

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const claimDelimiter = " | "

type attributor struct {
	embedder Embedder
	policy   Policy
}

// attribute cites, for every fact, the document whose embedding is closest
// to the fact's claim string. Documents are embedded once per call.
func (a *attributor) attribute(ctx context.Context, logger *slog.Logger, facts []Fact, docs []Document) ([]Fact, []*StoreError) {
	docVecs, failures := a.embedDocuments(ctx, docs)
	claims := make(map[string][]float32)

	for i := range facts {
		claim := claimString(facts[i])
		vec, seen := claims[claim]
		if !seen && len(docs) > 0 {
			embedded := attempt("embedder", "embed", "claim", func() ([]float32, error) {
				return a.embed(ctx, claim)
			})
			if !embedded.OK() {
				logger.WarnContext(ctx, "claim embedding failed", "claim", claim, "error", embedded.Err)
				failures = append(failures, embedded.Err)
			}
			vec = embedded.OrEmpty()
			claims[claim] = vec
		}
		a.cite(&facts[i], vec, docVecs)
	}

	return facts, failures
}

func (a *attributor) cite(f *Fact, claim []float32, docVecs [][]float32) {
	f.Citations = []int{}
	f.CitationsAll = []CitationScore{}
	f.TopScore = 0
	if len(docVecs) == 0 {
		return
	}

	var ranked []CitationScore
	if claim != nil {
		for i, vec := range docVecs {
			if vec == nil {
				continue
			}
			if s := cosine(claim, vec); s > 0 {
				ranked = append(ranked, CitationScore{N: i + 1, Score: s})
			}
		}
	}

	if len(ranked) == 0 {
		f.Citations = []int{1}
		f.CitationsAll = []CitationScore{{N: 1, Score: 0}}
		return
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > a.policy.CitationAlternatives {
		ranked = ranked[:a.policy.CitationAlternatives]
	}
	for i := range ranked {
		ranked[i].Score = roundTo(ranked[i].Score, a.policy.ScoreDecimals)
	}

	f.Citations = []int{ranked[0].N}
	f.TopScore = ranked[0].Score
	f.CitationsAll = ranked
}

// embedDocuments returns one vector per document, nil where the document has
// no text or could not be embedded.
func (a *attributor) embedDocuments(ctx context.Context, docs []Document) ([][]float32, []*StoreError) {
	vecs := make([][]float32, len(docs))
	errs := make([]*StoreError, len(docs))

	embedOne := func(i int) {
		text := documentText(docs[i])
		if text == "" {
			return
		}
		embedded := attempt("embedder", "embed", docs[i].URL, func() ([]float32, error) {
			return a.embed(ctx, text)
		})
		vecs[i] = embedded.OrEmpty()
		errs[i] = embedded.Err
	}

	if a.policy.EmbedWorkers <= 1 || len(docs) < 2 {
		for i := range docs {
			embedOne(i)
		}
	} else if err := runPool(a.policy.EmbedWorkers, len(docs), embedOne); err != nil {
		for i := range docs {
			if vecs[i] == nil && errs[i] == nil {
				embedOne(i)
			}
		}
	}

	var failures []*StoreError
	for _, e := range errs {
		if e != nil {
			failures = append(failures, e)
		}
	}
	return vecs, failures
}

func (a *attributor) embed(ctx context.Context, text string) ([]float32, error) {
	if a.embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}
	return a.embedder.Embed(ctx, text)
}

// runPool runs fn for every index in [0, n) on a bounded ants pool.
// Each index writes only its own slot, so results do not depend on scheduling.
func runPool(size, n int, fn func(i int)) error {
	pool, err := ants.NewPool(size)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			wg.Done()
			fn(i)
		}
	}
	wg.Wait()
	return nil
}

// claimString joins the non-empty textual parts of a fact.
func claimString(f Fact) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{f.Subject, f.Predicate, f.Object, f.Meta.ObjectLabel} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, claimDelimiter)
}

// documentText concatenates the textual fields of a document.
func documentText(d Document) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Title, d.Summary, d.Text} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// cosine computes dot(a,b) / (|a|*|b|) with both norms floored at 1.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		na += float64(v) * float64(v)
	}
	for _, v := range b {
		nb += float64(v) * float64(v)
	}
	return dot / (math.Max(math.Sqrt(na), 1.0) * math.Max(math.Sqrt(nb), 1.0))
}

func projectSources(docs []Document) []Source {
	sources := make([]Source, 0, len(docs))
	for _, d := range docs {
		sources = append(sources, Source{URL: d.URL, Title: d.Title, Engine: d.Engine})
	}
	return sources
}

func confidenceFor(sourceCount int) Confidence {
	switch {
	case sourceCount >= 3:
		return ConfidenceHigh
	case sourceCount == 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

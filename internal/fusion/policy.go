package fusion

import "fmt"

// Policy holds every tunable constant of the fusion pipeline.
type Policy struct {
	// EntitiesCollection is the vector collection holding entity embeddings.
	EntitiesCollection string `yaml:"entities_collection"`
	// DefaultTopK is used when a request does not set TopK.
	DefaultTopK int `yaml:"default_top_k"`
	// CandidateCap bounds how many candidates are expanded into facts.
	CandidateCap int `yaml:"candidate_cap"`
	// NeighborCap bounds how many relations are read per candidate.
	NeighborCap int `yaml:"neighbor_cap"`
	// PreferredRankBonus is added to facts whose rank is "preferred".
	PreferredRankBonus float64 `yaml:"preferred_rank_bonus"`
	// TypePredicateBonus is added to facts whose predicate defines a type.
	TypePredicateBonus float64 `yaml:"type_predicate_bonus"`
	// TypePredicateCodes are the "instance of" / "subclass of" predicate codes.
	TypePredicateCodes []string `yaml:"type_predicate_codes"`
	// ScoreDecimals is the rounding precision of fusion and citation scores.
	ScoreDecimals int `yaml:"score_decimals"`
	// FootnoteCap bounds the trailing [n] markers in the answer.
	FootnoteCap int `yaml:"footnote_cap"`
	// DetailLengthThreshold is the requested length at which the answer gets an extra sentence.
	DetailLengthThreshold int `yaml:"detail_length_threshold"`
	// CitationAlternatives bounds the ranked matches kept per fact.
	CitationAlternatives int `yaml:"citation_alternatives"`
	// EmbedWorkers is the number of concurrent document embeddings. 1 embeds sequentially.
	EmbedWorkers int `yaml:"embed_workers"`
}

// DefaultPolicy returns the standard fusion policy.
func DefaultPolicy() Policy {
	return Policy{
		EntitiesCollection:    "entities",
		DefaultTopK:           5,
		CandidateCap:          3,
		NeighborCap:           10,
		PreferredRankBonus:    0.10,
		TypePredicateBonus:    0.05,
		TypePredicateCodes:    []string{"P31", "P279"},
		ScoreDecimals:         4,
		FootnoteCap:           3,
		DetailLengthThreshold: 400,
		CitationAlternatives:  5,
		EmbedWorkers:          1,
	}
}

// MaxBonus is the largest amount bonuses can add to a normalized vector score.
func (p Policy) MaxBonus() float64 {
	return p.PreferredRankBonus + p.TypePredicateBonus
}

// Validate checks that the policy is usable.
func (p Policy) Validate() error {
	if p.EntitiesCollection == "" {
		return fmt.Errorf("entities collection is required")
	}
	if p.DefaultTopK <= 0 {
		return fmt.Errorf("default top_k must be greater than 0")
	}
	if p.CandidateCap <= 0 {
		return fmt.Errorf("candidate cap must be greater than 0")
	}
	if p.NeighborCap <= 0 {
		return fmt.Errorf("neighbor cap must be greater than 0")
	}
	if p.PreferredRankBonus < 0 || p.TypePredicateBonus < 0 {
		return fmt.Errorf("bonuses must not be negative")
	}
	if p.ScoreDecimals < 0 {
		return fmt.Errorf("score decimals must not be negative")
	}
	if p.FootnoteCap < 0 {
		return fmt.Errorf("footnote cap must not be negative")
	}
	if p.CitationAlternatives <= 0 {
		return fmt.Errorf("citation alternatives must be greater than 0")
	}
	if p.EmbedWorkers <= 0 {
		return fmt.Errorf("embed workers must be greater than 0")
	}
	return nil
}

func (p Policy) isTypePredicate(code string) bool {
	if code == "" {
		return false
	}
	for _, c := range p.TypePredicateCodes {
		if c == code {
			return true
		}
	}
	return false
}

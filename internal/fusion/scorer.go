package fusion

import (
	"math"
	"sort"
)

// scoreFacts assigns each fact its fusion score and sorts the slice by score,
// highest first. Facts with equal scores keep their encounter order.
func scoreFacts(facts []Fact, normalized map[string]float64, policy Policy) []Fact {
	for i := range facts {
		facts[i].Score = fusionScore(facts[i], normalized, policy)
	}
	sort.SliceStable(facts, func(i, j int) bool {
		return facts[i].Score > facts[j].Score
	})
	return facts
}

func fusionScore(f Fact, normalized map[string]float64, policy Policy) float64 {
	score := clamp01(normalized[f.candidate])
	if f.Meta.Rank == RankPreferred {
		score += policy.PreferredRankBonus
	}
	if policy.isTypePredicate(f.Meta.PredCode) {
		score += policy.TypePredicateBonus
	}
	return roundTo(score, policy.ScoreDecimals)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

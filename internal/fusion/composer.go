package fusion

import (
	"fmt"
	"strings"
)

const detailSentence = " Additional detail: facts are ranked by fused vector and graph signals, each attributed to its closest supporting source."

// Compose renders the templated answer for the given counts and style.
// It never fails; empty inputs render as zero counts.
func Compose(policy Policy, style Style, factCount, hitCount, sourceCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s): synthesized %d verified facts from %d vector hits.",
		leadPhrase(style.Tone), audiencePhrase(style.Audience), timeframePhrase(style.Timeframe),
		factCount, hitCount)
	if style.Length >= policy.DetailLengthThreshold {
		b.WriteString(detailSentence)
	}
	b.WriteString(footnoteMarkers(policy, sourceCount))
	return b.String()
}

func leadPhrase(tone string) string {
	switch tone {
	case "executive":
		return "Executive summary"
	case "humorous":
		return "Quick take (with a wink)"
	default:
		return "Summary"
	}
}

func audiencePhrase(audience string) string {
	switch audience {
	case "general":
		return "for a general audience"
	case "non-technical":
		return "for non-technical readers"
	default:
		return "for experts"
	}
}

func timeframePhrase(days int) string {
	if days == 0 {
		return "all time"
	}
	return fmt.Sprintf("last %d days", days)
}

// footnoteMarkers returns " [1][2]..." for the first min(FootnoteCap, sourceCount) sources.
func footnoteMarkers(policy Policy, sourceCount int) string {
	n := sourceCount
	if n > policy.FootnoteCap {
		n = policy.FootnoteCap
	}
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(" ")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "[%d]", i)
	}
	return b.String()
}

// clipWords truncates text to at most max words.
func clipWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:max], " ")
}

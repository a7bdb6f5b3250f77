package service

import (
	"fmt"
	"strings"

	"wildmenipedia/internal/fusion"
)

// RenderMarkdown renders a hybrid result as a standalone markdown document.
func RenderMarkdown(question string, result fusion.HybridResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", question)
	fmt.Fprintf(&b, "%s\n\n", result.Answer)
	fmt.Fprintf(&b, "_Confidence: %s_\n\n", result.Confidence)

	b.WriteString("## Supporting facts\n\n")
	if len(result.Facts) == 0 {
		b.WriteString("_No facts found._\n")
	}
	for _, f := range result.Facts {
		fmt.Fprintf(&b, "- %s %s %s", f.Subject, factPredicate(f), factObject(f))
		if tags := factTags(f); tags != "" {
			fmt.Fprintf(&b, " (%s)", tags)
		}
		fmt.Fprintf(&b, " score %.4f", f.Score)
		for _, n := range f.Citations {
			fmt.Fprintf(&b, " [%d]", n)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Sources\n\n")
	if len(result.Sources) == 0 {
		b.WriteString("_No sources._\n")
	}
	for i, s := range result.Sources {
		title := s.Title
		if title == "" {
			title = s.URL
		}
		fmt.Fprintf(&b, "%d. [%s](%s)", i+1, title, s.URL)
		if s.Engine != "" {
			fmt.Fprintf(&b, " via %s", s.Engine)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func factPredicate(f fusion.Fact) string {
	if f.Meta.PredicateLabel != "" {
		return f.Meta.PredicateLabel
	}
	return f.Predicate
}

func factObject(f fusion.Fact) string {
	if f.Meta.ObjectLabel != "" {
		return f.Meta.ObjectLabel
	}
	return f.Object
}

func factTags(f fusion.Fact) string {
	var tags []string
	if f.Meta.PredCode != "" {
		tags = append(tags, f.Meta.PredCode)
	}
	if f.Meta.Rank != "" {
		tags = append(tags, string(f.Meta.Rank))
	}
	return strings.Join(tags, ", ")
}

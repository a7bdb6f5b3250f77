package llm

import (
	"context"
	"fmt"
	"strings"

	"wildmenipedia/internal/fusion"
)

const (
	maxPromptFacts = 8

	systemPrompt = "You are an expert knowledge assistant for an encyclopedia. " +
		"Write concise, factual answers grounded in the provided facts. " +
		"Respect the requested tone, audience, and timeframe."
)

// AnswerWriter phrases fused facts into prose with a chat model.
type AnswerWriter struct {
	model  ChatModel
	params ChatParams
}

// NewAnswerWriter creates an AnswerWriter backed by model.
func NewAnswerWriter(model ChatModel) *AnswerWriter {
	return &AnswerWriter{
		model:  model,
		params: ChatParams{MaxTokens: 512, Temperature: 0.3},
	}
}

// WriteAnswer asks the model for a single-paragraph answer to question.
func (w *AnswerWriter) WriteAnswer(ctx context.Context, question string, facts []fusion.Fact, style fusion.Style) (string, error) {
	reply, err := w.model.ChatWithMessages(ctx, BuildPrompt(question, facts, style), w.params)
	if err != nil {
		return "", fmt.Errorf("failed to write answer: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// BuildPrompt renders the system and user messages for an answer request.
// Only the highest ranked facts are included.
func BuildPrompt(question string, facts []fusion.Fact, style fusion.Style) []Message {
	var b strings.Builder
	for i, f := range facts {
		if i == maxPromptFacts {
			break
		}
		fmt.Fprintf(&b, "- %s | %s | %s\n", f.Subject, predicateText(f), objectText(f))
	}

	user := fmt.Sprintf("Question: %s\n\nKnown facts (may be partial):\n%s\n"+
		"Style: tone=%s, audience=%s, timeframe=%d days, target_length≈%d words.\n"+
		"Compose a single-paragraph answer.",
		question, b.String(), style.Tone, style.Audience, style.Timeframe, style.Length)

	return []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: user},
	}
}

func predicateText(f fusion.Fact) string {
	if f.Meta.PredicateLabel != "" {
		return f.Meta.PredicateLabel
	}
	return f.Predicate
}

func objectText(f fusion.Fact) string {
	if f.Meta.ObjectLabel != "" {
		return f.Meta.ObjectLabel
	}
	return f.Object
}

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wildmenipedia/internal/fusion"
)

func sampleFacts(n int) []fusion.Fact {
	facts := make([]fusion.Fact, 0, n)
	for i := range n {
		facts = append(facts, fusion.Fact{
			Subject:   "E:Q1",
			Predicate: fmt.Sprintf("p%d", i),
			Object:    fmt.Sprintf("E:Q%d", i+10),
		})
	}
	return facts
}

func TestBuildPrompt(t *testing.T) {
	facts := sampleFacts(10)
	facts[0].Meta = fusion.Meta{PredicateLabel: "instance of", ObjectLabel: "human"}

	style := fusion.Style{Tone: "executive", Length: 120, Audience: "experts", Timeframe: 0}
	msgs := BuildPrompt("who is E:Q1?", facts, style)

	if len(msgs) != 2 || msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Fatalf("messages = %+v", msgs)
	}
	user := msgs[1].Content
	if !strings.HasPrefix(user, "Question: who is E:Q1?") {
		t.Errorf("user prompt = %q", user)
	}
	if !strings.Contains(user, "- E:Q1 | instance of | human\n") {
		t.Errorf("labels should replace ids: %q", user)
	}
	if strings.Count(user, "- E:Q1 |") != maxPromptFacts {
		t.Errorf("expected %d fact bullets, got %d", maxPromptFacts, strings.Count(user, "- E:Q1 |"))
	}
	if !strings.Contains(user, "tone=executive, audience=experts, timeframe=0 days, target_length≈120 words.") {
		t.Errorf("style line missing: %q", user)
	}
}

func TestAnswerWriter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 2 || req.MaxTokens != 512 {
			t.Errorf("request = %+v", req)
		}
		writeChatResponse(w, "  Marie Curie was a physicist.  ")
	}))
	defer server.Close()

	writer := NewAnswerWriter(NewClient(server.URL, "", "test-model"))
	text, err := writer.WriteAnswer(context.Background(), "who?", sampleFacts(1), fusion.DefaultStyle())
	if err != nil {
		t.Fatalf("WriteAnswer failed: %v", err)
	}
	if text != "Marie Curie was a physicist." {
		t.Errorf("text = %q", text)
	}
}

func TestAnswerWriterError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "test-model")
	client.retry = fastRetry()

	if _, err := NewAnswerWriter(client).WriteAnswer(context.Background(), "who?", nil, fusion.DefaultStyle()); err == nil {
		t.Error("expected error")
	}
}

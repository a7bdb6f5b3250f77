package llm

import "context"

// Chat roles understood by OpenAI-compatible servers.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of a prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams tunes a single completion. Zero values use the server defaults,
// except Model which falls back to the model the client was built with.
type ChatParams struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// ChatModel completes a conversation. Both the plain HTTP client and the
// go-openai adapter implement it, so the answer writer does not depend on a provider.
type ChatModel interface {
	ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error)
}

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIChat completes conversations through the OpenAI API or any server that mirrors it.
type OpenAIChat struct {
	client *openai.Client
	model  string
	retry  RetryPolicy
}

// NewOpenAIChat creates an OpenAI chat model. An empty baseURL uses api.openai.com.
func NewOpenAIChat(baseURL, apiKey, model string) *OpenAIChat {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
		if !strings.HasSuffix(cfg.BaseURL, "/v1") {
			cfg.BaseURL += "/v1"
		}
	}
	return &OpenAIChat{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		retry:  DefaultRetryPolicy(),
	}
}

// ChatWithMessages sends a chat completion request, retrying failed attempts with backoff.
func (o *OpenAIChat) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	model := params.Model
	if model == "" {
		model = o.model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	var resp openai.ChatCompletionResponse
	err := RetryWithBackoff(ctx, func() error {
		var callErr error
		resp, callErr = o.client.CreateChatCompletion(ctx, req)
		return callErr
	}, o.retry)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

package llm

import "fmt"

const (
	// ProviderLocal disables the remote model; answers come from the local composer.
	ProviderLocal = "local"
	// ProviderLlamaCpp talks to a llama.cpp (or other OpenAI-compatible) server with the plain HTTP client.
	ProviderLlamaCpp = "llamacpp"
	// ProviderOpenAI uses the go-openai SDK.
	ProviderOpenAI = "openai"
)

// NewChatModel returns the chat model for provider, or nil for ProviderLocal.
func NewChatModel(provider, baseURL, apiKey, model string) (ChatModel, error) {
	switch provider {
	case "", ProviderLocal:
		return nil, nil
	case ProviderLlamaCpp:
		if baseURL == "" {
			return nil, fmt.Errorf("LLM_BASE_URL is required for provider %q", provider)
		}
		return NewClient(baseURL, apiKey, model), nil
	case ProviderOpenAI:
		if apiKey == "" && baseURL == "" {
			return nil, fmt.Errorf("LLM_API_KEY or LLM_BASE_URL is required for provider %q", provider)
		}
		if model == "" {
			return nil, fmt.Errorf("LLM_MODEL is required for provider %q", provider)
		}
		return NewOpenAIChat(baseURL, apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}

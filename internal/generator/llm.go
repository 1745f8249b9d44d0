package generator

import "context"

// LLMClient is the outbound text generation provider.
type LLMClient interface {
    Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is what the concrete clients need to dial a provider.
type LLMSettings struct {
    Provider    string
    Model       string
    APIKey      string
    BaseURL     string
    Temperature float64
    MaxTokens   int64
}

// Prompt is one system + user exchange.
type Prompt struct {
    System string
    User   string
}

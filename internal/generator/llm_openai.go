package generator

import (
    "context"
    "errors"

    openai "github.com/openai/openai-go"
    "github.com/openai/openai-go/option"
)

// ErrNotConfigured is returned by Complete when no API key was supplied.
// The service still starts; every generation then falls back.
var ErrNotConfigured = errors.New("openai api key not configured")

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
type OpenAILLM struct {
    Model       string
    Temperature float64
    MaxTokens   int64

    client     openai.Client
    configured bool
}

func NewOpenAILLMFromConfig(cfg *LLMSettings) (*OpenAILLM, error) {
    if cfg == nil {
        return nil, errors.New("llm config is nil")
    }
    if cfg.Model == "" {
        return nil, errors.New("llm model is required")
    }
    opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
    if cfg.BaseURL != "" {
        opts = append(opts, option.WithBaseURL(cfg.BaseURL))
    }
    return &OpenAILLM{
        Model:       cfg.Model,
        Temperature: cfg.Temperature,
        MaxTokens:   cfg.MaxTokens,
        client:      openai.NewClient(opts...),
        configured:  cfg.APIKey != "",
    }, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
    if !o.configured {
        return "", ErrNotConfigured
    }

    resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
        Model: openai.ChatModel(o.Model),
        Messages: []openai.ChatCompletionMessageParamUnion{
            openai.SystemMessage(prompt.System),
            openai.UserMessage(prompt.User),
        },
        Temperature: openai.Float(o.Temperature),
        MaxTokens:   openai.Int(o.MaxTokens),
    })
    if err != nil {
        return "", err
    }
    if len(resp.Choices) == 0 {
        return "", errors.New("openai: empty choices")
    }
    return resp.Choices[0].Message.Content, nil
}

package generator

import (
    "context"
    "errors"
    "fmt"
    "time"

    "go.uber.org/zap"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/metrics"
    "github.com/unclebandit/editorial-content-service/internal/model"
)

// Fallback causes, used as metric labels.
const (
    ReasonNotConfigured = "not_configured"
    ReasonProvider      = "provider_error"
    ReasonInvalidReply  = "invalid_reply"
)

// ContentGenerator turns a request into content. It never fails: any
// provider or parsing problem yields the templated fallback instead.
// Safe for concurrent use.
type ContentGenerator struct {
    llm     LLMClient
    timeout time.Duration
    log     *zap.SugaredLogger
}

func NewContentGenerator(llm LLMClient, timeout time.Duration, log *zap.SugaredLogger) *ContentGenerator {
    return &ContentGenerator{llm: llm, timeout: timeout, log: log}
}

// New builds the generator for the configured provider.
func New(cfg config.Generator, log *zap.SugaredLogger) (*ContentGenerator, error) {
    llm, err := buildLLM(cfg)
    if err != nil {
        return nil, err
    }
    if cfg.Provider == "openai" && cfg.APIKey == "" {
        log.Warnw("no generation API key configured, every request will use fallback content", "provider", cfg.Provider)
    }
    return NewContentGenerator(llm, cfg.Timeout, log), nil
}

func buildLLM(cfg config.Generator) (LLMClient, error) {
    switch cfg.Provider {
    case "openai":
        return NewOpenAILLMFromConfig(&LLMSettings{
            Provider:    cfg.Provider,
            Model:       cfg.Model,
            APIKey:      cfg.APIKey,
            BaseURL:     cfg.BaseURL,
            Temperature: cfg.Temperature,
            MaxTokens:   cfg.MaxTokens,
        })
    case "mock":
        return MockLLM{}, nil
    default:
        return nil, fmt.Errorf("unsupported generation provider %q", cfg.Provider)
    }
}

func (g *ContentGenerator) Generate(ctx context.Context, req model.GenerationRequest) model.Content {
    if g.timeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, g.timeout)
        defer cancel()
    }

    start := time.Now()
    raw, err := g.llm.Complete(ctx, BuildPrompt(req))
    metrics.GenerationDuration.Observe(time.Since(start).Seconds())
    if err != nil {
        reason := ReasonProvider
        if errors.Is(err, ErrNotConfigured) {
            reason = ReasonNotConfigured
        }
        return g.fallback(req, reason, err)
    }

    reply, err := ParseReply(raw)
    if err != nil {
        return g.fallback(req, ReasonInvalidReply, err)
    }

    metrics.GenerationsTotal.WithLabelValues(string(req.Channel), metrics.SourceProvider).Inc()
    return model.Content{
        Channel:        req.Channel,
        ProspectTier:   req.ProspectTier,
        GenerationDate: req.Date,
        GeneralTheme:   reply.GeneralTheme,
        WeeklyTheme:    reply.WeeklyTheme,
        Body:           reply.Body,
    }
}

func (g *ContentGenerator) fallback(req model.GenerationRequest, reason string, cause error) model.Content {
    g.log.Warnw("generation failed, using fallback content",
        "channel", req.Channel, "tier", req.ProspectTier, "date", req.Date.String(),
        "reason", reason, "err", cause)
    metrics.GenerationFallbacksTotal.WithLabelValues(reason).Inc()
    metrics.GenerationsTotal.WithLabelValues(string(req.Channel), metrics.SourceFallback).Inc()
    return Fallback(req)
}

// Fallback is the deterministic content used whenever the provider cannot
// deliver.
func Fallback(req model.GenerationRequest) model.Content {
    return model.Content{
        Channel:        req.Channel,
        ProspectTier:   req.ProspectTier,
        GenerationDate: req.Date,
        GeneralTheme:   fmt.Sprintf("%s content for %s prospects", req.Channel, req.ProspectTier),
        WeeklyTheme:    fmt.Sprintf("Weekly focus for %s", req.Date),
        Body:           fmt.Sprintf("Generic content for %s - %s", req.Channel, req.ProspectTier),
    }
}

// Status describes the provider wiring without revealing secrets.
type Status struct {
    Provider     string `json:"provider"`
    Model        string `json:"model"`
    Configured   bool   `json:"configured"`
    APIKeyLength int    `json:"apiKeyLength"`
}

func StatusOf(cfg config.Generator) Status {
    return Status{
        Provider:     cfg.Provider,
        Model:        cfg.Model,
        Configured:   cfg.Provider == "mock" || cfg.APIKey != "",
        APIKeyLength: len(cfg.APIKey),
    }
}

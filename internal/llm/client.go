// Package llm wraps the chat-completion providers used for business analysis.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/config"
)

// ErrDisabled is returned by every call when no provider is configured.
var ErrDisabled = errors.New("llm provider disabled")

// Client is the interface every provider satisfies.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request is a single-turn completion. Zero Temperature or MaxTokens
// leaves the provider default in place.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	JSON        bool
}

// Response holds the raw response content and token usage.
type Response struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

const defaultMaxTokens = 2048

// New picks the provider named by cfg.LLM.Provider.
func New(cfg config.LLM, log *zap.Logger) (Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	switch strings.ToLower(cfg.Provider) {
	case "anthropic", "":
		if cfg.APIKey == "" {
			log.Warn("LLM_API_KEY not set, AI analysis disabled")
			return DisabledClient{}, nil
		}
		log.Info("llm using Anthropic API", zap.String("model", cfg.Model))
		return NewAPIClient(cfg.APIKey, cfg.Model, timeout), nil
	case "openai":
		if cfg.APIKey == "" {
			log.Warn("LLM_API_KEY not set, AI analysis disabled")
			return DisabledClient{}, nil
		}
		log.Info("llm using OpenAI-compatible API", zap.String("model", cfg.Model), zap.String("base_url", cfg.BaseURL))
		return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model, timeout), nil
	case "cli":
		log.Info("llm using Claude CLI (local plan)", zap.String("path", cfg.CLIPath))
		return NewCLIClient(cfg.CLIPath, timeout), nil
	case "disabled", "none":
		log.Info("llm disabled, deterministic analysis only")
		return DisabledClient{}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// ── DisabledClient ─────────────────────────────────────────

type DisabledClient struct{}

func (DisabledClient) Complete(context.Context, Request) (*Response, error) {
	return nil, ErrDisabled
}

// StripCodeFences removes a surrounding markdown code fence, if any.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func maxTokens(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}

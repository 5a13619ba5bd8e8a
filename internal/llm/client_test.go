package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/config"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n```json {\"a\":1}```  ", `{"a":1}`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripCodeFences(tt.in); got != tt.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisabledClient(t *testing.T) {
	_, err := DisabledClient{}.Complete(context.Background(), Request{Prompt: "hi"})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	log := zap.NewNop()
	tests := []struct {
		cfg  config.LLM
		want string
	}{
		{config.LLM{Provider: "anthropic", APIKey: "k", Model: "m"}, "*llm.APIClient"},
		{config.LLM{Provider: "anthropic"}, "llm.DisabledClient"},
		{config.LLM{Provider: "openai", APIKey: "k", BaseURL: "http://x"}, "*llm.OpenAIClient"},
		{config.LLM{Provider: "cli"}, "*llm.CLIClient"},
		{config.LLM{Provider: "disabled"}, "llm.DisabledClient"},
	}

	for _, tt := range tests {
		c, err := New(tt.cfg, log)
		if err != nil {
			t.Fatalf("New(%q) error: %v", tt.cfg.Provider, err)
		}
		if got := typeName(c); got != tt.want {
			t.Errorf("New(%q) = %s, want %s", tt.cfg.Provider, got, tt.want)
		}
	}

	if _, err := New(config.LLM{Provider: "carrier-pigeon"}, log); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func typeName(c Client) string {
	switch c.(type) {
	case *APIClient:
		return "*llm.APIClient"
	case *OpenAIClient:
		return "*llm.OpenAIClient"
	case *CLIClient:
		return "*llm.CLIClient"
	case DisabledClient:
		return "llm.DisabledClient"
	default:
		return "unknown"
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"prompt_tokens":12,"completion_tokens":3}}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL+"/", "secret", "gpt-4o", 5*time.Second)
	resp, err := c.Complete(context.Background(), Request{
		System:      "sys",
		Prompt:      "user",
		Temperature: 0.7,
		MaxTokens:   300,
		JSON:        true,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	if resp.Content != `{"ok":true}` || resp.PromptTokens != 12 || resp.OutputTokens != 3 {
		t.Errorf("Complete() = %+v", resp)
	}
	if got.Model != "gpt-4o" || got.MaxTokens != 300 {
		t.Errorf("request model/max_tokens = %s/%d", got.Model, got.MaxTokens)
	}
	if got.Temperature == nil || *got.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", got.Temperature)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v, want json_object", got.ResponseFormat)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestOpenAIClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "", "m", 5*time.Second)
	if _, err := c.Complete(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "", "m", 5*time.Second)
	if _, err := c.Complete(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

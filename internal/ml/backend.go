package ml

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Providers selectable with AI_PROVIDER
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// ErrBackendUnavailable is returned by the backend used when no provider could be configured
var ErrBackendUnavailable = errors.New("model backend unavailable")

// Kind selects the model family a prompt is sent to
type Kind int

const (
	KindText Kind = iota
	KindVision
)

// Prompt is a single completion request
type Prompt struct {
	Kind      Kind
	System    string
	Text      string
	Image     []byte
	MaxTokens int
}

// Backend is a model provider able to answer one prompt with text
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Config selects and configures the provider
type Config struct {
	Provider string

	OllamaEndpoint   string
	OllamaModelImage string
	OllamaModelText  string

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModelImage string
	OpenAIModelText  string
}

// NewBackend builds the backend named by cfg.Provider
func NewBackend(cfg Config, httpClient *http.Client) (Backend, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaBackend(cfg.OllamaEndpoint, cfg.OllamaModelImage, cfg.OllamaModelText, httpClient)
	case ProviderOpenAI:
		return NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModelImage, cfg.OpenAIModelText, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// UnavailableBackend fails every call, which routes the service onto its fallbacks
type UnavailableBackend struct {
	Reason string
}

func (b UnavailableBackend) Name() string { return "unavailable" }

func (b UnavailableBackend) Complete(context.Context, Prompt) (string, error) {
	if b.Reason != "" {
		return "", fmt.Errorf("%w: %s", ErrBackendUnavailable, b.Reason)
	}
	return "", ErrBackendUnavailable
}

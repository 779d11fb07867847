package ml

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaBackend talks to a local Ollama server
type OllamaBackend struct {
	client     *api.Client
	imageModel string
	textModel  string
}

// NewOllamaBackend creates a backend for the given server endpoint
func NewOllamaBackend(endpoint, imageModel, textModel string, httpClient *http.Client) (*OllamaBackend, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama endpoint %q: %w", endpoint, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OllamaBackend{
		client:     api.NewClient(base, httpClient),
		imageModel: imageModel,
		textModel:  textModel,
	}, nil
}

func (b *OllamaBackend) Name() string { return ProviderOllama }

// Complete runs a non-streaming generate call
func (b *OllamaBackend) Complete(ctx context.Context, prompt Prompt) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  b.textModel,
		Prompt: prompt.Text,
		System: prompt.System,
		Stream: &stream,
	}
	if prompt.Kind == KindVision {
		req.Model = b.imageModel
	}
	if len(prompt.Image) > 0 {
		req.Images = []api.ImageData{prompt.Image}
	}

	var out strings.Builder
	err := b.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return out.String(), nil
}

package ml

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBackend talks to the hosted chat completion API
type OpenAIBackend struct {
	client     *openai.Client
	imageModel string
	textModel  string
}

// NewOpenAIBackend creates a backend; baseURL may be empty for the public API
func NewOpenAIBackend(apiKey, baseURL, imageModel, textModel string, httpClient *http.Client) *OpenAIBackend {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}

	return &OpenAIBackend{
		client:     openai.NewClientWithConfig(config),
		imageModel: imageModel,
		textModel:  textModel,
	}
}

func (b *OpenAIBackend) Name() string { return ProviderOpenAI }

// Complete sends a chat completion with an optional system message and inline image
func (b *OpenAIBackend) Complete(ctx context.Context, prompt Prompt) (string, error) {
	model := b.textModel
	if prompt.Kind == KindVision {
		model = b.imageModel
	}

	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(prompt.Image) > 0 {
		user.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt.Text},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(prompt.Image),
				},
			},
		}
	} else {
		user.Content = prompt.Text
	}
	messages = append(messages, user)

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: prompt.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

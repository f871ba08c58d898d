package agent

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ChatModel is the hosted text-generation dependency. Implementations
// must honour context cancellation.
type ChatModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIModel talks to any OpenAI-compatible chat completion endpoint.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIModel builds a client for the given endpoint. baseURL may be
// empty for the default OpenAI endpoint.
func NewOpenAIModel(apiKey, baseURL, model string) *OpenAIModel {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIModel{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends a single-turn prompt and returns the model's text reply.
func (m *OpenAIModel) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		// Low temperature keeps reformulation and SQL output stable.
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

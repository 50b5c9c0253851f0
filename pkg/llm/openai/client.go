package openai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// Client adapts the OpenAI chat completions API to llm.ChatModel.
// BaseURL may point at any OpenAI-compatible endpoint.
type Client struct {
	api   *openai.Client
	model string
}

func New(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

func (c *Client) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		// Low temperature for more consistent structured output.
		Temperature: 0.2,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned by model")
	}
	return resp.Choices[0].Message.Content, nil
}

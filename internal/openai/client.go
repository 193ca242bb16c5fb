// Package openai provides a thin wrapper around the official OpenAI Go SDK for chat completions.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

var (
	// ErrEmptyInput is returned when Complete is called with an empty user prompt.
	ErrEmptyInput = errors.New("openai: prompt is empty")
	// ErrNoChoiceInResponse is returned when the API response contains no choices.
	ErrNoChoiceInResponse = errors.New("openai: no choice in response")
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.3
)

// Client calls the OpenAI chat completions API via the official SDK.
type Client struct {
	sdk         openaisdk.Client
	model       string
	temperature float64
	sdkOpts     []option.RequestOption
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel sets the chat model. Empty keeps the default.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) {
		c.temperature = temperature
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint. Empty keeps the default.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.sdkOpts = append(c.sdkOpts, option.WithBaseURL(baseURL))
		}
	}
}

// NewClient creates an OpenAI chat client using the official SDK.
// SDK retries are disabled; callers decide how to handle failures.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := &Client{
		model:       DefaultModel,
		temperature: defaultTemperature,
		sdkOpts:     []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)},
	}

	for _, opt := range opts {
		opt(client)
	}

	client.sdk = openaisdk.NewClient(client.sdkOpts...)

	return client
}

// Model returns the configured chat model.
func (c *Client) Model() string {
	return c.model
}

// Complete sends one system and one user message and returns the trimmed
// content of the first choice.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyInput
	}

	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openaisdk.SystemMessage(system))
	}

	messages = append(messages, openaisdk.UserMessage(prompt))

	resp, err := c.sdk.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(c.model),
		Messages:    messages,
		Temperature: param.NewOpt(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoiceInResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

package llm

import (
	"context"
	"errors"
	"fmt"

	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"github.com/sashabaranov/go-openai"
)

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIProvider talks to any OpenAI-compatible chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	config OpenAIConfig
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider allows an empty API key; Chat reports it as a configuration error.
func NewOpenAIProvider(config OpenAIConfig) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Model == "" {
		config.Model = openai.GPT4
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	if p.config.APIKey == "" {
		return "", disol_errors.Configuration("OPENAI_API_KEY is required")
	}

	options := Apply(Options{Model: p.config.Model, Temperature: 0.7}, opts...)

	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       options.Model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", disol_errors.Upstream("completion API returned no choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyError marks API-level failures as upstream errors. Transport
// failures stay unclassified and surface verbatim.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return disol_errors.Upstream(fmt.Sprintf("completion API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message), err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return disol_errors.Upstream(fmt.Sprintf("completion API error (status %d)", reqErr.HTTPStatusCode), err)
	}
	return err
}

package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Apply resolves opts on top of the defaults.
func Apply(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// Provider is a completion backend.
type Provider interface {
	// Chat sends the ordered history and returns the single completion text.
	Chat(ctx context.Context, history []Message, opts ...Option) (string, error)
}

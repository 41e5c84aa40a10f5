package llm

import (
	"context"
)

// Message is a chat message in a provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option carries optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	User        string // End-user identifier forwarded to the provider
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithUser(user string) Option {
	return func(o *Options) {
		o.User = user
	}
}

// LLMProvider is the contract for a completion backend. One method: the
// proxy always sends a full history (system prompt plus the user turn).
type LLMProvider interface {
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}

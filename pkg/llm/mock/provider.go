// Package mock provides the keyless fallback provider: a deterministic echo
// that lets the demo run end to end without an OpenAI key.
package mock

import (
	"context"
	"fmt"

	"ai-chat-demo-be/pkg/llm"
)

type MockProvider struct{}

var _ llm.LLMProvider = &MockProvider{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	prompt := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			prompt = history[i].Content
			break
		}
	}

	return fmt.Sprintf(
		"Mock response: %q (signed in as %s). Set OPENAI_API_KEY to use a real model.",
		prompt, options.User,
	), nil
}

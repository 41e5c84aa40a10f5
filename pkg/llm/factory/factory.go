package factory

import (
	"ai-chat-demo-be/pkg/llm"
	"ai-chat-demo-be/pkg/llm/mock"
	"ai-chat-demo-be/pkg/llm/openai"
)

// NewLLMProvider picks the chat backend from the configured credentials: a
// real OpenAI client when an API key is present, the deterministic mock
// otherwise. The mock keeps the demo fully usable without any provider
// account.
func NewLLMProvider(apiKey, modelName string) llm.LLMProvider {
	if apiKey == "" {
		return mock.NewMockProvider()
	}
	return openai.NewOpenAIProvider(apiKey, modelName)
}

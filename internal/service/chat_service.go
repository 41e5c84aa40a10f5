package service

import (
	"context"
	"strings"

	"ai-chat-demo-be/internal/dto"
	"ai-chat-demo-be/internal/pkg/apperrors"
	"ai-chat-demo-be/internal/pkg/logger"
	"ai-chat-demo-be/pkg/llm"
)

const systemPrompt = "You are a concise assistant in a ChatGPT-like demo app."

type IChatService interface {
	Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewChatService(provider llm.LLMProvider, log logger.ILogger) IChatService {
	return &chatService{
		provider: provider,
		logger:   log,
	}
}

// Ask forwards the prompt to the configured provider. Provider failures are
// wrapped as UpstreamError so only a generic message crosses the boundary.
func (s *chatService) Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	email := strings.TrimSpace(req.Email)

	if prompt == "" {
		return nil, apperrors.NewValidation("Prompt is required.")
	}
	if email == "" {
		return nil, apperrors.NewValidation("User context is missing.")
	}

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}

	reply, err := s.provider.Chat(ctx, history,
		llm.WithTemperature(0.7),
		llm.WithUser(email),
	)
	if err != nil {
		s.logger.Error("chat", "completion request failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, apperrors.NewUpstream("Failed to get AI response.", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, apperrors.NewUpstream("Failed to get AI response.", nil)
	}

	return &dto.ChatResponse{Reply: reply}, nil
}

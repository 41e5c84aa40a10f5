package service

import (
	"context"
	"encoding/base64"
	"strings"

	"ai-chat-demo-be/internal/dto"
	"ai-chat-demo-be/internal/pkg/apperrors"
	"ai-chat-demo-be/internal/pkg/logger"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	logger logger.ILogger
}

func NewAuthService(log logger.ILogger) IAuthService {
	return &authService{logger: log}
}

// Login is a demo-only stub. Real authentication is delegated to the
// identity provider on the client; this endpoint issues a reversible
// base64("<email>:session") marker, NOT a verified credential, and nothing
// in the chat flow treats it as one.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.NewValidation("Email and password are required.")
	}

	token := base64.StdEncoding.EncodeToString([]byte(email + ":session"))

	s.logger.Info("auth", "demo login token issued", map[string]interface{}{"email": email})

	return &dto.LoginResponse{
		User: dto.LoginUser{
			Email: email,
			Token: token,
		},
	}, nil
}

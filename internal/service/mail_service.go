package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"ai-chat-demo-be/internal/dto"
	"ai-chat-demo-be/internal/pkg/apperrors"
	"ai-chat-demo-be/internal/pkg/logger"
	"ai-chat-demo-be/internal/pkg/mailer"
)

type IMailService interface {
	SendVerificationLink(ctx context.Context, req *dto.SendVerificationLinkRequest) error
	SendTestMail(ctx context.Context, req *dto.SendTestMailRequest) error
}

type mailService struct {
	emailService        mailer.IEmailService
	verificationBaseURL string
	logger              logger.ILogger
}

func NewMailService(emailService mailer.IEmailService, verificationBaseURL string, log logger.ILogger) IMailService {
	return &mailService{
		emailService:        emailService,
		verificationBaseURL: verificationBaseURL,
		logger:              log,
	}
}

// greetingName falls back to the local-part of the address when no display
// name was supplied.
func greetingName(displayName, email string) string {
	name := strings.TrimSpace(displayName)
	if name != "" {
		return name
	}
	if local, _, found := strings.Cut(email, "@"); found && local != "" {
		return local
	}
	return "there"
}

func (s *mailService) SendVerificationLink(ctx context.Context, req *dto.SendVerificationLinkRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return apperrors.NewValidation("Email is required.")
	}

	link := fmt.Sprintf("%s?email=%s", s.verificationBaseURL, url.QueryEscape(email))

	if err := s.emailService.SendVerificationEmail(email, greetingName(req.DisplayName, email), link); err != nil {
		var configErr *apperrors.ConfigurationError
		if errors.As(err, &configErr) {
			s.logger.Error("mail", "verification email unavailable", map[string]interface{}{"error": err.Error()})
			return err
		}
		s.logger.Error("mail", "verification email delivery failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return apperrors.NewUpstream("Failed to send verification email.", err)
	}

	s.logger.Info("mail", "verification email sent", map[string]interface{}{"email": email})
	return nil
}

func (s *mailService) SendTestMail(ctx context.Context, req *dto.SendTestMailRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return apperrors.NewValidation("Email is required.")
	}

	if err := s.emailService.SendTestEmail(email, greetingName(req.DisplayName, email)); err != nil {
		var configErr *apperrors.ConfigurationError
		if errors.As(err, &configErr) {
			s.logger.Error("mail", "test email unavailable", map[string]interface{}{"error": err.Error()})
			return err
		}
		s.logger.Error("mail", "test email delivery failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return apperrors.NewUpstream("Failed to send test email.", err)
	}

	s.logger.Info("mail", "test email sent", map[string]interface{}{"email": email})
	return nil
}

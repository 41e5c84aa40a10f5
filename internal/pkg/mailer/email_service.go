package mailer

import (
	"fmt"
	"strings"

	"ai-chat-demo-be/internal/config"
	"ai-chat-demo-be/internal/pkg/apperrors"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendVerificationEmail(toEmail, displayName, verificationLink string) error
	SendTestEmail(toEmail, displayName string) error
}

type emailService struct {
	cfg config.SMTPConfig
}

// NewEmailService keeps the SMTP settings and dials per send. An incomplete
// SMTP block is not a constructor error: each send fails fast with a
// ConfigurationError instead, so the rest of the app keeps serving.
func NewEmailService(cfg config.SMTPConfig) IEmailService {
	return &emailService{cfg: cfg}
}

func (s *emailService) dialer() (*gomail.Dialer, error) {
	if !s.cfg.Complete() {
		return nil, &apperrors.ConfigurationError{Missing: "SMTP"}
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	d.SSL = s.cfg.Secure || s.cfg.Port == 465
	return d, nil
}

func (s *emailService) send(toEmail, subject, textBody, htmlBody string) error {
	d, err := s.dialer()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	return d.DialAndSend(m)
}

func (s *emailService) SendVerificationEmail(toEmail, displayName, verificationLink string) error {
	safeName := strings.TrimSpace(displayName)
	if safeName == "" {
		safeName = "there"
	}

	text := strings.Join([]string{
		fmt.Sprintf("Hi %s,", safeName),
		"",
		"Thanks for signing up for ChatGPT Mimic AI",
		"Please verify your email address by clicking the link below:",
		verificationLink,
		"",
		"If you did not create this account, you can ignore this message.",
		"",
		"ChatGPT AI Mimic Team",
	}, "\n")

	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; background-color: #f8fafc; padding: 32px;">
			<div style="max-width: 560px; margin: 0 auto; background: #ffffff; border: 1px solid #e2e8f0; border-radius: 18px; overflow: hidden;">
				<div style="padding: 26px 24px 8px;">
					<h2 style="margin: 0 0 8px; color: #0f172a;">Verify your email</h2>
					<p style="margin: 0 0 16px; color: #475569;">Hi %s,</p>
					<p style="margin: 0 0 16px; color: #475569;">
						Thanks for signing up for ChatGPT Mimic AI. Please verify your email address to continue.
					</p>
					<div style="margin: 24px 0;">
						<a href="%s" style="display: inline-block; padding: 12px 18px; background: #4f46e5; color: #ffffff; text-decoration: none; border-radius: 10px; font-weight: 600;">
							Verify email
						</a>
					</div>
					<p style="margin: 0 0 12px; color: #64748b; font-size: 13px;">
						If the button does not work, copy and paste this link into your browser:
					</p>
					<p style="word-break: break-all; color: #0f172a; font-size: 13px;">%s</p>
				</div>
				<div style="border-top: 1px solid #e2e8f0; padding: 16px 24px; background: #f8fafc;">
					<p style="margin: 0; color: #94a3b8; font-size: 12px;">
						If you did not create this account, you can ignore this message.
					</p>
				</div>
			</div>
		</div>
	`, safeName, verificationLink, verificationLink)

	return s.send(toEmail, "Verify your email for ChatGPT Mimic AI", text, html)
}

func (s *emailService) SendTestEmail(toEmail, displayName string) error {
	safeName := strings.TrimSpace(displayName)
	if safeName == "" {
		safeName = "there"
	}

	text := strings.Join([]string{
		fmt.Sprintf("Hi %s,", safeName),
		"",
		"This is a test email from ChatGPT Mimic AI.",
		"If you received it, SMTP delivery is configured correctly.",
		"",
		"ChatGPT AI Mimic Team",
	}, "\n")

	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>SMTP test successful</h2>
			<p>Hi %s,</p>
			<p>This is a test email from ChatGPT Mimic AI. If you received it, SMTP delivery is configured correctly.</p>
		</div>
	`, safeName)

	return s.send(toEmail, "ChatGPT Mimic AI test email", text, html)
}

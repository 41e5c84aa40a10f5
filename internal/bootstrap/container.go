package bootstrap

import (
	"log"

	"ai-chat-demo-be/internal/config"
	"ai-chat-demo-be/internal/controller"
	"ai-chat-demo-be/internal/pkg/logger"
	"ai-chat-demo-be/internal/pkg/mailer"
	"ai-chat-demo-be/internal/service"
	"ai-chat-demo-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController
	MailController controller.IMailController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(cfg.SMTP)
	if !cfg.SMTP.Complete() {
		log.Println("[WARN] SMTP configuration incomplete; mail endpoints will answer 500 until it is set")
	}

	llmProvider := factory.NewLLMProvider(cfg.Ai.OpenAIKey, cfg.Ai.Model)
	if cfg.Ai.OpenAIKey == "" {
		log.Println("[INFO] OPENAI_API_KEY not set; /api/chat serves mock replies")
	} else {
		log.Printf("[INFO] Using OpenAI model: %s", cfg.Ai.Model)
	}

	// 2. Services
	authService := service.NewAuthService(sysLogger)
	chatService := service.NewChatService(llmProvider, sysLogger)
	mailService := service.NewMailService(emailService, cfg.App.VerificationBaseURL, sysLogger)

	// 3. Controllers
	return &Container{
		AuthController: controller.NewAuthController(authService, mailService),
		ChatController: controller.NewChatController(chatService),
		MailController: controller.NewMailController(mailService),
		Logger:         sysLogger,
	}
}

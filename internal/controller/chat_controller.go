package controller

import (
	"errors"

	"ai-chat-demo-be/internal/dto"
	"ai-chat-demo-be/internal/pkg/apperrors"
	"ai-chat-demo-be/internal/pkg/serverutils"
	"ai-chat-demo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", serverutils.BearerAuthMiddleware, c.Ask)
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: "Prompt is required."})
	}

	res, err := c.chatService.Ask(ctx.Context(), &req)
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: validationErr.Message})
		}
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorBody{Error: "Failed to get AI response."})
	}

	return ctx.JSON(res)
}

package controller

import (
	"errors"

	"ai-chat-demo-be/internal/dto"
	"ai-chat-demo-be/internal/pkg/apperrors"
	"ai-chat-demo-be/internal/pkg/serverutils"
	"ai-chat-demo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMailController interface {
	RegisterRoutes(r fiber.Router)
	SendTest(ctx *fiber.Ctx) error
}

type mailController struct {
	mailService service.IMailService
}

func NewMailController(mailService service.IMailService) IMailController {
	return &mailController{mailService: mailService}
}

func (c *mailController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mail")
	h.Post("/send-test", c.SendTest)
}

func (c *mailController) SendTest(ctx *fiber.Ctx) error {
	var req dto.SendTestMailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: "Email is required."})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: "Email is required."})
	}

	if err := c.mailService.SendTestMail(ctx.Context(), &req); err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: validationErr.Message})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorBody{Error: "Failed to send test email."})
	}

	return ctx.JSON(dto.OkResponse{Ok: true})
}

package controller

import (
	"errors"

	"ai-chat-demo-be/internal/dto"
	"ai-chat-demo-be/internal/pkg/apperrors"
	"ai-chat-demo-be/internal/pkg/serverutils"
	"ai-chat-demo-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	SendVerificationLink(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
	mailService service.IMailService
}

func NewAuthController(authService service.IAuthService, mailService service.IMailService) IAuthController {
	return &authController{
		authService: authService,
		mailService: mailService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/send-verification-link", c.SendVerificationLink)
}

// Login serves the demo-only token stub; the real sign-in flow never calls
// it.
func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: "Email and password are required."})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: "Email and password are required."})
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: validationErr.Message})
		}
		return err
	}

	return ctx.JSON(res)
}

func (c *authController) SendVerificationLink(ctx *fiber.Ctx) error {
	var req dto.SendVerificationLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: "Email is required."})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: "Email is required."})
	}

	if err := c.mailService.SendVerificationLink(ctx.Context(), &req); err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: validationErr.Message})
		}
		// Delivery and configuration failures collapse to one generic body.
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorBody{Error: "Failed to send verification email."})
	}

	return ctx.JSON(dto.OkResponse{Ok: true})
}

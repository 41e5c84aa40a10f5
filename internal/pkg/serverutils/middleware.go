package serverutils

import (
	"errors"
	"strings"

	"ai-chat-demo-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// BearerToken is the fiber.Ctx local the auth middleware stores the raw
// token under.
const BearerToken = "bearer_token"

// BearerAuthMiddleware rejects requests without a Bearer-style Authorization
// header. The token itself is an opaque pass-through: verifying it is the
// identity provider's job, not the proxy's.
func BearerAuthMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorBody{Error: "Not authenticated."})
	}

	ctx.Locals(BearerToken, strings.TrimSpace(authHeader[7:]))
	return ctx.Next()
}

// ErrorHandlerMiddleware is the last-resort translator for errors the
// controllers did not map themselves. It never exposes upstream causes.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *apperrors.ValidationError
		var authErr *apperrors.AuthenticationError
		var upstreamErr *apperrors.UpstreamError
		var configErr *apperrors.ConfigurationError

		switch {
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorBody{Error: validationErr.Message})
		case errors.As(err, &authErr):
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorBody{Error: authErr.Message})
		case errors.As(err, &upstreamErr):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorBody{Error: upstreamErr.Message})
		case errors.As(err, &configErr):
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Error: "Server is not configured for this operation."})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Error: "Internal server error."})
		}
	}
}

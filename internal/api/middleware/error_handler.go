package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

func errorBody(code, message string) fiber.Map {
	return fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	}
}

// ErrorHandler renders every error as {"error":{"code","message"}}. Client
// errors include their cause; server errors only log it.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(errorBody("HTTP_ERROR", fiberErr.Message))
		}

		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(errorBody("TIMEOUT", "Request timed out"))
		}
		if errors.Is(err, context.Canceled) {
			return c.Status(fiber.StatusRequestTimeout).JSON(errorBody("CANCELED", "Request canceled"))
		}

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			msg := appErr.Message
			if appErr.StatusCode >= 500 {
				logger.ErrorContext(c.UserContext(), "internal error",
					slog.String("code", appErr.Code),
					slog.String("path", c.Path()),
					slog.Any("error", appErr.Err),
				)
			} else if appErr.Err != nil {
				msg = appErr.Error()
			}

			return c.Status(appErr.StatusCode).JSON(errorBody(appErr.Code, msg))
		}

		logger.ErrorContext(c.UserContext(), "unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(errorBody(domain.ErrInternal.Code, domain.ErrInternal.Message))
	}
}

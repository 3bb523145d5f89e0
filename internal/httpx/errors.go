// Package httpx holds the fiber plumbing shared by every route group: the
// error boundary and request logging.
package httpx

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	autherror "github.com/AnthoniusHendriyanto/marketplace-api/internal/errors"
)

// ErrorHandler is the only place errors become HTTP responses. Handlers and
// middleware return classified errors; this maps kind to status, logs once
// and writes {"error": message}.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		}
		if status >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "request failed", attrs...)
		} else {
			logger.InfoContext(c.UserContext(), "request rejected", attrs...)
		}

		return c.Status(status).JSON(fiber.Map{"error": message})
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	kind := autherror.KindOf(err)
	return kind.HTTPStatus(), autherror.PublicMessage(err)
}

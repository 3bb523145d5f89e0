package httpx

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var redactedHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
}

func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		ctx := c.UserContext()
		logger.DebugContext(ctx, "starting request",
			headerGroup(c),
			slog.String("method", c.Method()),
			slog.String("uri", c.OriginalURL()),
		)

		err := c.Next()
		if err != nil {
			// Let the error handler write the response so the logged status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.InfoContext(ctx, "finished request",
			slog.String("method", c.Method()),
			slog.String("uri", c.OriginalURL()),
			slog.String("route", c.Route().Path),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", requestID(c)),
		)
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func headerGroup(c *fiber.Ctx) slog.Attr {
	headers := c.GetReqHeaders()
	args := make([]any, 0, len(headers))
	for k, v := range headers {
		if _, skip := redactedHeaders[strings.ToLower(k)]; skip {
			continue
		}
		args = append(args, slog.String(k, strings.Join(v, ",")))
	}
	return slog.Group("headers", args...)
}

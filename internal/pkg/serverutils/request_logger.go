package serverutils

import (
	"time"

	"notekeeper-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet
			if code := statusOf(err); code != 0 {
				status = code
			}
		}

		log.Info("HTTP", "request", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.IP(),
		})
		return err
	}
}

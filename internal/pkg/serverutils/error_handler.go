package serverutils

import (
	"errors"

	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

// NewErrorHandler renders every error returned by a handler as the standard
// failure envelope.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindInternal {
				log.Error("HTTP", appErr.Message, map[string]interface{}{
					"method": ctx.Method(),
					"path":   ctx.Path(),
					"error":  err,
				})
			}
			return ctx.Status(appErr.StatusCode()).JSON(ErrorResponse(appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err,
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(internalErrorMessage))
	}
}

func statusOf(err error) int {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

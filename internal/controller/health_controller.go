package controller

import (
	"context"
	"time"

	"notekeeper-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	db Pinger
}

func NewHealthController(db Pinger) IHealthController {
	return &healthController{db: db}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()

	if err := c.db.PingContext(pingCtx); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Database unavailable"))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", nil))
}

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/controller"
	"notekeeper-be/internal/pkg/hasher"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/ratelimit"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/redisstore"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/pkg/events"

	pktNats "notekeeper-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	NoteController   controller.INoteController
	HealthController controller.IHealthController

	// Background Services (nil when events leave the process)
	AuditService service.IAuditService

	Logger  logger.ILogger
	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// 2. Event Bus
	var publisher events.Publisher
	switch cfg.Events.Bus {
	case "nats":
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS, events are dropped", map[string]interface{}{"error": err.Error()})
			publisher = events.NopPublisher{}
			break
		}
		publisher = natsPub
		c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
	default:
		bus := events.NewChannelBus(cfg.Events.Topic)
		auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
		publisher = bus
		c.AuditService = service.NewAuditService(bus, auditLogger, sysLogger)
		c.closers = append(c.closers, bus.Close, auditLogger.Sync)
	}

	// 3. Sign-in attempt store
	attempts, err := c.attemptRepository(cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	limiter := ratelimit.NewFailureLimiter(attempts, "signin", cfg.RateLimit.SignInMaxAttempts, cfg.RateLimit.SignInWindow)

	// 4. Services
	passwordHasher, err := hasher.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	tokenService := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(uowFactory, passwordHasher, tokenService, limiter, publisher, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisher, sysLogger)
	noteQueryService := service.NewNoteQueryService(uowFactory)

	// 5. Controllers
	authMiddleware := serverutils.NewJwtMiddleware(tokenService)
	c.AuthController = controller.NewAuthController(authService, tokenService)
	c.NoteController = controller.NewNoteController(noteService, noteQueryService, authMiddleware)
	c.HealthController = controller.NewHealthController(sqlDB)

	return c, nil
}

func (c *Container) attemptRepository(cfg *config.Config, log logger.ILogger) (contract.AttemptRepository, error) {
	if cfg.RateLimit.RedisURL == "" {
		return memory.NewAttemptRepository(), nil
	}

	opt, err := redis.ParseURL(cfg.RateLimit.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	c.closers = append(c.closers, rdb.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The limiter fails open until Redis comes back
		log.Warn("BOOTSTRAP", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
	}

	return redisstore.NewAttemptRepository(rdb), nil
}

// RegisterRoutes mounts every controller under /api.
func (c *Container) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	c.HealthController.RegisterRoutes(api)
	c.AuthController.RegisterRoutes(api)
	c.NoteController.RegisterRoutes(api)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	_ = c.Logger.Sync()
	return firstErr
}

package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Events    EventsConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string `env:"APP_PORT" envDefault:"3000"`
	Environment        string `env:"GO_ENV" envDefault:"development"`
	LogFilePath        string `env:"LOG_FILE_PATH" envDefault:"logs/app.log"`
	AuditLogFilePath   string `env:"AUDIT_LOG_FILE_PATH" envDefault:"logs/audit.log"`
	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
}

type DatabaseConfig struct {
	Connection string `env:"DB_CONNECTION_STRING,required,notEmpty"`
	Debug      bool   `env:"DB_DEBUG" envDefault:"false"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

type EventsConfig struct {
	Bus     string `env:"EVENT_BUS" envDefault:"memory"` // "memory" or "nats"
	NatsURL string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	Topic   string `env:"EVENT_TOPIC" envDefault:"note-events"`
}

type RateLimitConfig struct {
	RedisURL          string        `env:"REDIS_URL"` // empty keeps counters in process memory
	SignInMaxAttempts int           `env:"SIGNIN_MAX_ATTEMPTS" envDefault:"10"`
	SignInWindow      time.Duration `env:"SIGNIN_WINDOW" envDefault:"15m"`
}

type TracingConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"notekeeper-be"`
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
	return Parse()
}

// Parse builds the configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Events.Bus != "memory" && c.Events.Bus != "nats" {
		return fmt.Errorf("EVENT_BUS must be memory or nats, got %q", c.Events.Bus)
	}
	if c.RateLimit.SignInMaxAttempts < 1 {
		return fmt.Errorf("SIGNIN_MAX_ATTEMPTS must be at least 1, got %d", c.RateLimit.SignInMaxAttempts)
	}
	return nil
}

// LoadDatabase reads only the database settings, for tools that never serve HTTP.
func LoadDatabase() (*DatabaseConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
	var cfg DatabaseConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

package integration

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notekeeper-be/internal/bootstrap"
	"notekeeper-be/internal/config"
	"notekeeper-be/internal/server"
	"notekeeper-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// newTestServer boots the full stack against DB_CONNECTION_STRING, or skips.
func newTestServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("No .env file found, using system env")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		t.Setenv("JWT_SECRET", "integration-secret")
	}
	t.Setenv("EVENT_BUS", "memory")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Parse()
	require.NoError(t, err)

	dir := t.TempDir()
	cfg.App.LogFilePath = filepath.Join(dir, "app.log")
	cfg.App.AuditLogFilePath = filepath.Join(dir, "audit.log")
	cfg.Auth.BcryptCost = bcrypt.MinCost

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	container, err := bootstrap.NewContainer(db, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return server.New(cfg, container).GetApp(), db
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return res.StatusCode, env
}

func dataString(t *testing.T, env envelope) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(env.Data, &s))
	return s
}

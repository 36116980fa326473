package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestValidateRequest(t *testing.T) {
	type signUp struct {
		Name  string  `json:"name" validate:"required"`
		Email string  `json:"email" validate:"required,email"`
		Title *string `json:"title" validate:"omitempty,min=1,max=10"`
	}

	empty := ""
	long := "eleven-char"
	tests := []struct {
		name string
		req  signUp
		want string
	}{
		{name: "ok", req: signUp{Name: "Ada", Email: "ada@example.com"}},
		{name: "missing name", req: signUp{Email: "ada@example.com"}, want: "name is required"},
		{name: "bad email", req: signUp{Name: "Ada", Email: "nope"}, want: "email must be a valid email"},
		{name: "empty patch field", req: signUp{Name: "Ada", Email: "ada@example.com", Title: &empty}, want: "title must not be empty"},
		{name: "patch field too long", req: signUp{Name: "Ada", Email: "ada@example.com", Title: &long}, want: "title must be at most 10 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestErrorHandlerRendersEnvelope(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger.NewWithCore(core))})

	app.Get("/not-found", func(ctx *fiber.Ctx) error { return apperror.NotFound("Note not found") })
	app.Get("/internal", func(ctx *fiber.Ctx) error {
		return apperror.Internal("Failed to fetch notes", errors.New("password authentication failed"))
	})
	app.Get("/plain", func(ctx *fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/not-found", status: http.StatusNotFound, message: "Note not found"},
		{path: "/internal", status: http.StatusInternalServerError, message: "Failed to fetch notes"},
		{path: "/plain", status: http.StatusInternalServerError, message: "Internal server error"},
		{path: "/missing-route", status: http.StatusNotFound, message: "Cannot GET /missing-route"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.StatusCode)

			body := decode(t, res)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
			assert.NotContains(t, body["message"], "password authentication")
		})
	}

	assert.Equal(t, 2, logs.FilterField(zapcore.Field{Key: "module", Type: zapcore.StringType, String: "HTTP"}).Len())
}

type stubVerifier struct {
	identity dto.Identity
	err      error
}

func (s stubVerifier) Verify(string) (dto.Identity, error) {
	return s.identity, s.err
}

func TestJwtMiddleware(t *testing.T) {
	newApp := func(v TokenVerifier) *fiber.App {
		app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger.NewNopLogger())})
		app.Get("/me", NewJwtMiddleware(v), func(ctx *fiber.Ctx) error {
			id, err := CurrentIdentity(ctx)
			if err != nil {
				return err
			}
			return ctx.JSON(SuccessResponse("ok", id.Email))
		})
		return app
	}

	ok := newApp(stubVerifier{identity: dto.Identity{Email: "ada@example.com", UserId: 3}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	res, err := ok.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ada@example.com", decode(t, res)["data"])

	for _, header := range []string{"", "Token good", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		res, err := ok.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, header)
		assert.Equal(t, "Invalid token", decode(t, res)["message"])
	}

	rejecting := newApp(stubVerifier{err: apperror.InvalidToken("Invalid token")})
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer expired")
	res, err = rejecting.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger.NewNopLogger())})
	app.Use(RequestLogger(logger.NewWithCore(core)))
	app.Get("/gone", func(ctx *fiber.Ctx) error { return apperror.NotFound("Note not found") })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/gone", nil))
	require.NoError(t, err)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	details := entries[0].ContextMap()["details"].(map[string]interface{})
	assert.EqualValues(t, http.StatusNotFound, details["status"])
}

package serverutils

import (
	"strings"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

const (
	localsUserId = "user_id"
	localsEmail  = "email"
)

type TokenVerifier interface {
	Verify(token string) (dto.Identity, error)
}

// BearerToken returns the token from "Authorization: Bearer <token>", or "".
func BearerToken(ctx *fiber.Ctx) string {
	token, ok := strings.CutPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func NewJwtMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := BearerToken(ctx)
		if token == "" {
			return apperror.InvalidToken("Invalid token")
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			return apperror.Wrap(apperror.KindInvalidToken, "Invalid token", err)
		}

		ctx.Locals(localsUserId, identity.UserId)
		ctx.Locals(localsEmail, identity.Email)
		return ctx.Next()
	}
}

// CurrentIdentity reads what NewJwtMiddleware stored for this request.
func CurrentIdentity(ctx *fiber.Ctx) (dto.Identity, error) {
	userId, ok := ctx.Locals(localsUserId).(int64)
	if !ok {
		return dto.Identity{}, apperror.InvalidToken("Invalid token")
	}
	email, _ := ctx.Locals(localsEmail).(string)
	return dto.Identity{UserId: userId, Email: email}, nil
}

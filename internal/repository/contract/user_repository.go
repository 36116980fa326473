package contract

import (
	"context"
	"errors"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"
)

// ErrDuplicate is returned when a write violates a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}

package service

import (
	"errors"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const invalidTokenMessage = "Invalid token"

type ITokenService interface {
	Issue(email string, userId int64) (string, error)
	Verify(token string) (dto.Identity, error)
}

type tokenClaims struct {
	Email  string `json:"email"`
	UserId int64  `json:"user_id"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) ITokenService {
	return newTokenServiceWithClock(secret, ttl, time.Now)
}

func newTokenServiceWithClock(secret string, ttl time.Duration, now func() time.Time) *tokenService {
	return &tokenService{secret: []byte(secret), ttl: ttl, now: now}
}

func (s *tokenService) Issue(email string, userId int64) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Email:  email,
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperror.Internal("Failed to issue token", err)
	}
	return signed, nil
}

func (s *tokenService) Verify(token string) (dto.Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return dto.Identity{}, apperror.Wrap(apperror.KindInvalidToken, invalidTokenMessage, err)
	}
	if !parsed.Valid {
		return dto.Identity{}, apperror.InvalidToken(invalidTokenMessage)
	}
	if claims.Email == "" {
		return dto.Identity{}, apperror.Wrap(apperror.KindInvalidToken, invalidTokenMessage, errors.New("token has no email claim"))
	}

	return dto.Identity{Email: claims.Email, UserId: claims.UserId}, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/hasher"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/ratelimit"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"
)

const (
	invalidCredentialsMessage = "Invalid Email or Password"
	emailTakenMessage         = "Email already registered"
	tooManyAttemptsMessage    = "Too many sign-in attempts, please try again later"
	passwordTooLongMessage    = "password must be at most 72 bytes"
	signUpFieldTooLongMessage = "name and email must be at most 255 characters"
)

type IAuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResult, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (string, error)
	Authorize(ctx context.Context, token string) (string, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	hasher       hasher.PasswordHasher
	tokenService ITokenService
	limiter      ratelimit.ILimiter
	publisher    events.Publisher
	logger       logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	passwordHasher hasher.PasswordHasher,
	tokenService ITokenService,
	limiter ratelimit.ILimiter,
	publisher events.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		hasher:       passwordHasher,
		tokenService: tokenService,
		limiter:      limiter,
		publisher:    publisher,
		logger:       log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResult, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if len(req.Password) > hasher.MaxPasswordBytes {
		return nil, apperror.Validation(passwordTooLongMessage)
	}
	if utf8.RuneCountInString(name) > dto.MaxColumnLength || utf8.RuneCountInString(email) > dto.MaxColumnLength {
		return nil, apperror.Validation(signUpFieldTooLongMessage)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Check for existing user
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, apperror.Internal("Failed to create user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict(emailTakenMessage)
	}

	// 2. Hash password
	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, hasher.ErrPasswordTooLong) {
		return nil, apperror.Validation(passwordTooLongMessage)
	}
	if err != nil {
		return nil, apperror.Internal("Failed to create user", err)
	}

	// 3. Save, the unique index catches a concurrent sign-up
	now := time.Now()
	user := &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, apperror.Conflict(emailTakenMessage)
		}
		return nil, apperror.Internal("Failed to create user", err)
	}

	s.publish(ctx, events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.Id,
		"email":   user.Email,
	})

	return &dto.SignUpResult{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) SignIn(ctx context.Context, req *dto.SignInRequest) (string, error) {
	email := normalizeEmail(req.Email)

	if !s.acquireAttempt(ctx, email) {
		return "", apperror.TooManyRequests(tooManyAttemptsMessage)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return "", apperror.Internal("Failed to sign in", err)
	}

	if user == nil {
		s.hasher.CompareDummy(req.Password)
		return "", apperror.InvalidCredentials(invalidCredentialsMessage)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, hasher.ErrMismatch) {
			s.logger.Warn("AUTH", "Stored password hash could not be compared", map[string]interface{}{
				"user_id": user.Id,
				"error":   err.Error(),
			})
		}
		return "", apperror.InvalidCredentials(invalidCredentialsMessage)
	}

	token, err := s.tokenService.Issue(user.Email, user.Id)
	if err != nil {
		return "", err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn("AUTH", "Failed to reset sign-in attempts", map[string]interface{}{"error": err.Error()})
		}
	}

	s.publish(ctx, events.TypeUserSignedIn, map[string]interface{}{
		"user_id": user.Id,
	})

	return token, nil
}

func (s *authService) Authorize(ctx context.Context, token string) (string, error) {
	identity, err := s.tokenService.Verify(token)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInvalidToken, invalidTokenMessage, err)
	}
	return s.tokenService.Issue(identity.Email, identity.UserId)
}

// acquireAttempt reserves one sign-in attempt before credentials are checked.
// A failed attempt keeps its slot and a successful one resets the count.
// It fails open when the limiter store errors.
func (s *authService) acquireAttempt(ctx context.Context, email string) bool {
	if s.limiter == nil {
		return true
	}
	allowed, err := s.limiter.Acquire(ctx, email)
	if err != nil {
		s.logger.Warn("AUTH", "Sign-in limiter unavailable", map[string]interface{}{"error": err.Error()})
		return true
	}
	return allowed
}

func (s *authService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	publishEvent(ctx, s.publisher, s.logger, eventType, data)
}

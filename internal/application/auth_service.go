package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"medcare-api/internal/domain/entity"
	"medcare-api/internal/domain/repository"
	"medcare-api/pkg/helpers"
	"medcare-api/pkg/validation"
)

// invalidCredentials is deliberately identical for an unknown email and a
// wrong password, so login responses cannot be used for account enumeration.
const invalidCredentials = "invalid email or password"

// AuthService registers and authenticates users and mints session tokens.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone"`
	Password  string `json:"password" validate:"required,min=8"`
}

// Register creates a new patient account and returns it with a session token.
// Email uniqueness is enforced by the store's unique index, never by a prior
// read, so concurrent registrations with the same email race safely.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	if err := validation.Struct(in); err != nil {
		return nil, "", NewValidationError(validation.Details(err))
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		helpers.LogError(s.Logger, "password hash failed", err, nil)
		return nil, "", NewInternalError()
	}

	u := &entity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Password:  hash,
		Role:      entity.RolePatient,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", NewDuplicateError("email already registered")
		}
		helpers.LogError(s.Logger, "create user failed", err, logrus.Fields{"email": u.Email})
		return nil, "", NewInternalError()
	}

	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		helpers.LogError(s.Logger, "generate token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, "", NewInternalError()
	}
	return u, token, nil
}

// Login authenticates by email and password and mints a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", NewAuthenticationError(invalidCredentials)
	}
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", NewAuthenticationError(invalidCredentials)
		}
		helpers.LogError(s.Logger, "get user failed", err, nil)
		return nil, "", NewInternalError()
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", NewAuthenticationError(invalidCredentials)
	}

	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		helpers.LogError(s.Logger, "generate token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, "", NewInternalError()
	}
	return u, token, nil
}

// GetUser loads the account behind an authenticated session.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("user not found")
		}
		helpers.LogError(s.Logger, "get user failed", err, logrus.Fields{"user_id": userID})
		return nil, NewInternalError()
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/adoption-service/internal/auth"
	"github.com/spec-kit/adoption-service/internal/config"
	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/repository"
	"github.com/spec-kit/adoption-service/internal/validation"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

// AuthService coordinates registration, login, logout, and self-service
// account maintenance.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	denylist   auth.TokenDenylist
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, denylist auth.TokenDenylist) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		denylist:   denylist,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserUpdateInput carries the self-service update payload; nil fields are
// left unchanged.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

// Register validates the payload and creates a new account with the user role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	v := validation.New()
	v.Require("name", input.Name)
	v.MaxLen("name", input.Name, 255)
	v.Require("email", input.Email)
	v.Email("email", input.Email)
	v.MaxLen("email", input.Email, 255)
	v.Require("password", input.Password)
	v.MinLen("password", input.Password, 8)

	if v.Valid() {
		taken, err := s.users.EmailExists(ctx, input.Email, "")
		if err != nil {
			return nil, "", time.Time{}, err
		}
		if taken {
			v.Add("email", "The email has already been taken.")
		}
	}
	if err := v.Err(); err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.UserRoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", time.Time{}, apperrors.NewValidationError(map[string][]string{
				"email": {"The email has already been taken."},
			})
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	v := validation.New()
	v.Require("email", email)
	v.Email("email", email)
	v.Require("password", password)
	if err := v.Err(); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// UpdateUser applies a partial self-service update.
func (s *AuthService) UpdateUser(ctx context.Context, userID string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}

	v := validation.New()
	if input.Name != nil {
		v.Require("name", *input.Name)
		v.MaxLen("name", *input.Name, 255)
	}
	if input.Email != nil {
		v.Require("email", *input.Email)
		v.Email("email", *input.Email)
		v.MaxLen("email", *input.Email, 255)
	}
	if input.Password != nil {
		v.Require("password", *input.Password)
		v.MinLen("password", *input.Password, 8)
	}
	if v.Valid() && input.Email != nil {
		taken, err := s.users.EmailExists(ctx, *input.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			v.Add("email", "The email has already been taken.")
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewValidationError(map[string][]string{
				"email": {"The email has already been taken."},
			})
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account.
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("User")
		}
		return err
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

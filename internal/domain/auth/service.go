package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/core/tx"
	"gpustock/pkg/logger"
)

// Service provides login and user management.
type Service struct {
	repo      Repository
	jwt       *JWTService
	txManager tx.Manager
}

// NewService creates a new auth service.
func NewService(repo Repository, jwt *JWTService, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		jwt:       jwt,
		txManager: txManager,
	}
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *User, error) {
	user, err := s.repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		// Same response for unknown email and wrong password
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		logger.Warn(ctx, "failed login attempt", "email", creds.Email)
		return nil, nil, apperror.NewUnauthorized("invalid email or password")
	}

	tokenString, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, apperror.NewInternal(err)
	}

	return &Token{
		AccessToken: tokenString,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, user, nil
}

// Register creates a new user with a hashed password.
func (s *Service) Register(ctx context.Context, user *User, password string) error {
	if err := user.Validate(ctx); err != nil {
		return err
	}

	if len(password) < 8 {
		return apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	user.PasswordHash = string(hash)

	if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing.ID != user.ID {
		return apperror.NewDuplicate("user", "email", user.Email)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a user.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Update modifies user profile fields. The password hash is carried over
// unless ChangePassword is used.
func (s *Service) Update(ctx context.Context, user *User) error {
	if err := user.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, user.ID)
		if err != nil {
			return err
		}
		user.PasswordHash = current.PasswordHash
		user.CreatedAt = current.CreatedAt

		if err := s.repo.Update(ctx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
}

// ChangePassword sets a new password for the user.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, newPassword string) error {
	if len(newPassword) < 8 {
		return apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		user, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
		return s.repo.Update(ctx, user)
	})
}

// Delete removes a user. Users referenced by ledger entries are protected
// by the foreign key and surface as a still-referenced conflict.
func (s *Service) Delete(ctx context.Context, userID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, userID)
	})
	if err != nil && apperror.IsCode(err, apperror.CodeReferenced) {
		return apperror.NewStillReferenced("user", userID.String())
	}
	return err
}

// List retrieves users matching the filter.
func (s *Service) List(ctx context.Context, f UserFilter) ([]*User, int64, error) {
	return s.repo.List(ctx, f)
}

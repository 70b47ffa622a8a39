// Package auth provides authentication and user management.
package auth

import (
	"context"
	"net/mail"
	"time"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/entity"
	"gpustock/internal/core/id"
)

// Role is the closed role enumeration.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// ValidRole reports whether the role belongs to the enumeration.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User represents a system user: customers appear in the ledger as actors
// of sales and returns, admins and managers operate the back office.
type User struct {
	entity.BaseEntity

	FullName     string    `db:"full_name" json:"fullName"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	Role         Role      `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// NewUser creates a new user.
func NewUser(fullName, email string, role Role) *User {
	return &User{
		BaseEntity: entity.NewBaseEntity(),
		FullName:   fullName,
		Email:      email,
		Role:       role,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate implements entity.Validatable interface.
func (u *User) Validate(ctx context.Context) error {
	if u.FullName == "" {
		return apperror.NewValidation("full name is required").
			WithDetail("field", "fullName")
	}

	if u.Email == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return apperror.NewValidation("invalid email").
			WithDetail("field", "email").
			WithDetail("value", u.Email)
	}

	if !ValidRole(u.Role) {
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}

	return nil
}

// IsStaff reports whether the user may operate the back office.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is an issued access token with its expiry.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// UserFilter selects users for listing.
type UserFilter struct {
	Search string
	Role   *Role

	OrderBy string
	Limit   int
	Offset  int
}

// Repository defines the interface for user persistence.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, userID id.ID) error
	List(ctx context.Context, f UserFilter) ([]*User, int64, error)
	Exists(ctx context.Context, userID id.ID) (bool, error)
}

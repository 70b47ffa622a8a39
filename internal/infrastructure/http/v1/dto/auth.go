package dto

import (
	"time"

	"gpustock/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest is the request body for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the request body for creating a user account.
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ToEntity converts DTO to domain entity.
func (r *RegisterRequest) ToEntity() *auth.User {
	user := auth.NewUser(r.FullName, r.Email, auth.Role(r.Role))
	user.Phone = r.Phone
	return user
}

// UpdateUserRequest is the request body for editing a user account.
type UpdateUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Version  int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateUserRequest) ApplyTo(user *auth.User) {
	user.FullName = r.FullName
	user.Email = r.Email
	user.Phone = r.Phone
	user.Role = auth.Role(r.Role)
	user.Version = r.Version
}

// ChangePasswordRequest is the request body for setting a new password.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --- Response DTOs ---

// LoginResponse carries the issued token and the account it belongs to.
type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	TokenType   string        `json:"tokenType"`
	User        *UserResponse `json:"user"`
}

// UserResponse is the response body for a user account.
type UserResponse struct {
	BaseResponse
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUser creates response DTO from domain entity.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		BaseResponse: FromBase(u.BaseEntity),
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

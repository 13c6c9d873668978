// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"authsvc/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new identity.
type RegisterInput struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput is returned by both registration and login. It never carries
// the password hash.
type AuthOutput struct {
	Identity entity.Identity
	Token    string
}

// AuthUsecase defines registration and login.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
}

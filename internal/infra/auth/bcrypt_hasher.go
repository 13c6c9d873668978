// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"authsvc/config"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher implements service.PasswordHasher. The salt and cost are
// encoded into every hash it produces.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher reads the work factor from auth.bcryptCost.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost)
}

// NewBcryptHasherWithCost is used by tests to keep hashing fast.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domainerrors.ErrValidationFailed.
				WithDetails("password must be at most 72 bytes").
				WrapMessage("password exceeds bcrypt input limit")
		}

		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed.WithDetails(err.Error()), "bcrypt")
	}

	return string(hash), nil
}

// Verify relies on bcrypt's constant-time comparison of the derived keys.
func (h *bcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

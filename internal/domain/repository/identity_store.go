// Package repository defines the persistence contracts consumed by the use cases.
// Adapters for concrete storage technologies live under internal/infra/persistence.
package repository

import (
	"context"
	"errors"

	"authsvc/internal/domain/entity"
)

// ErrIdentityNotFound is returned by FindByEmail when no credential matches.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityStore is the durable mapping from email to credential record.
// Implementations must enforce email uniqueness atomically.
type IdentityStore interface {
	// Insert persists a new credential. A uniqueness violation on email or id
	// yields an error matching domainerrors.ErrDuplicateIdentity; any other
	// failure is a store error.
	Insert(ctx context.Context, credential *entity.Credential) error

	// FindByEmail returns ErrIdentityNotFound when nothing matches.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)
}

package repository

import (
	"context"
	"errors"

	"authsvc/internal/domain/entity"
)

// ErrContextNotFound is returned when the context table holds no rows.
var ErrContextNotFound = errors.New("context not found")

type ContextRepository interface {
	// FindLatest returns the row with the highest id.
	FindLatest(ctx context.Context) (*entity.ContextRecord, error)
}

package usecase

import (
	"context"

	"authsvc/internal/domain/entity"
)

// ContextUsecase reads the shared context record.
type ContextUsecase interface {
	GetLatest(ctx context.Context) (*entity.ContextRecord, error)
}

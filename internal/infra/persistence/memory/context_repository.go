package memory

import (
	"context"
	"sync"

	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
)

// ContextRepository keeps context rows in insertion order with
// auto-incrementing ids starting at 1.
type ContextRepository struct {
	mu      sync.RWMutex
	records []entity.ContextRecord
}

func NewContextRepository() *ContextRepository {
	return &ContextRepository{}
}

// Append adds a row and returns it.
func (r *ContextRepository) Append(data string) entity.ContextRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := entity.ContextRecord{
		ID:   int64(len(r.records)) + 1,
		Data: data,
	}
	r.records = append(r.records, record)

	return record
}

func (r *ContextRepository) FindLatest(ctx context.Context) (*entity.ContextRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "lookup cancelled")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.records) == 0 {
		return nil, repository.ErrContextNotFound
	}

	latest := r.records[len(r.records)-1]

	return &latest, nil
}

var _ repository.ContextRepository = (*ContextRepository)(nil)

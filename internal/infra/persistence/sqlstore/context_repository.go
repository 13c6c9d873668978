package sqlstore

import (
	"context"
	"time"

	"authsvc/config"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
	"authsvc/internal/errors"
	"authsvc/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type contextRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewContextRepository(db *gorm.DB, cfg *config.Config) repository.ContextRepository {
	return &contextRepository{
		db:           db,
		queryTimeout: queryTimeout(cfg),
	}
}

func (r *contextRepository) FindLatest(ctx context.Context) (*entity.ContextRecord, error) {
	ctx, cancel := withQueryTimeout(ctx, r.queryTimeout)
	defer cancel()

	var contextM model.ContextModel
	err := r.db.WithContext(ctx).Order("id DESC").Take(&contextM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContextNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find latest context")
	}

	return &entity.ContextRecord{
		ID:   contextM.ID,
		Data: contextM.Data,
	}, nil
}

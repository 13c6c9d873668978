package impl

import (
	"context"
	"log/slog"

	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
	"authsvc/internal/errors"
	"authsvc/internal/usecase"
)

type contextService struct {
	contextRepo repository.ContextRepository
	logger      *slog.Logger
}

// NewContextService is a passthrough to the context repository.
func NewContextService(contextRepo repository.ContextRepository, logger *slog.Logger) usecase.ContextUsecase {
	return &contextService{
		contextRepo: contextRepo,
		logger:      logger,
	}
}

func (srv *contextService) GetLatest(ctx context.Context) (*entity.ContextRecord, error) {
	record, err := srv.contextRepo.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrContextNotFound) {
			return nil, errors.Wrap(domainerrors.ErrContextNotFound, "no context rows")
		}
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Warn("Context lookup failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find latest context")
	}

	return record, nil
}

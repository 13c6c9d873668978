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
	"gorm.io/plugin/dbresolver"
)

type identityStore struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewIdentityStore returns a GORM backed repository.IdentityStore.
func NewIdentityStore(db *gorm.DB, cfg *config.Config) repository.IdentityStore {
	return &identityStore{
		db:           db,
		queryTimeout: queryTimeout(cfg),
	}
}

func (s *identityStore) Insert(ctx context.Context, credential *entity.Credential) error {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	credentialM := fromCredentialDomain(credential)
	if err := s.db.WithContext(ctx).Create(credentialM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert credential")
	}

	return nil
}

// FindByEmail reads from the primary so a login right after registration
// sees the new row even when replicas are configured.
func (s *identityStore) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	var credentialM model.CredentialModel
	err := s.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("email = ?", email).
		Take(&credentialM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential by email")
	}

	return toCredentialDomain(&credentialM), nil
}

func fromCredentialDomain(credential *entity.Credential) *model.CredentialModel {
	return &model.CredentialModel{
		ID:       credential.ID,
		Name:     credential.Name,
		Email:    credential.Email,
		Password: credential.PasswordHash,
	}
}

func toCredentialDomain(credentialM *model.CredentialModel) *entity.Credential {
	return &entity.Credential{
		ID:           credentialM.ID,
		Name:         credentialM.Name,
		Email:        credentialM.Email,
		PasswordHash: credentialM.Password,
	}
}

func queryTimeout(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.Store == nil {
		return 0
	}

	return cfg.Store.QueryTimeout
}

// withQueryTimeout bounds a single statement unless the caller already set a
// deadline.
func withQueryTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}

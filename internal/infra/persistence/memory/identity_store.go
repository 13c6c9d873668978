// Package memory holds process-local stores used for development and tests.
// Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
)

// IdentityStore is an in-memory repository.IdentityStore.
type IdentityStore struct {
	mu      sync.RWMutex
	byEmail map[string]entity.Credential
	ids     map[string]struct{}
}

// NewIdentityStore creates an empty store.
func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		byEmail: make(map[string]entity.Credential),
		ids:     make(map[string]struct{}),
	}
}

// Insert stores a copy of credential. Email and id are both unique.
func (s *IdentityStore) Insert(ctx context.Context, credential *entity.Credential) error {
	if err := ctx.Err(); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "insert cancelled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[credential.Email]; ok {
		return domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
	}
	if _, ok := s.ids[credential.ID]; ok {
		return domainerrors.ErrDuplicateIdentity.WrapMessage("id already assigned")
	}

	s.byEmail[credential.Email] = *credential
	s.ids[credential.ID] = struct{}{}

	return nil
}

func (s *IdentityStore) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "lookup cancelled")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	credential, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	return &credential, nil
}

var _ repository.IdentityStore = (*IdentityStore)(nil)

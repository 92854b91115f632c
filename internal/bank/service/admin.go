package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cipware/securepay/internal/bank/domain"
	"github.com/cipware/securepay/internal/bank/store"
)

// AdminService groups the employee-only account operations. The HTTP layer
// guards the role before any of these run.
type AdminService struct {
	Store    store.Store
	Accounts *AccountService
}

// CreateUser creates an account with an explicit role.
func (s *AdminService) CreateUser(ctx context.Context, name, email, password string, role domain.Role) (domain.Account, error) {
	if !role.Valid() {
		return domain.Account{}, fmt.Errorf("invalid role %q", role)
	}
	return s.Accounts.create(ctx, name, email, password, role)
}

// ListUsers returns every account. Password hashes stay internal; the HTTP
// layer's DTO simply has no field for them.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccounts(ctx)
}

// SetFrozen flips the freeze flag on the target account. Frozen accounts
// cannot be the source of any funds movement but can still receive.
func (s *AdminService) SetFrozen(ctx context.Context, targetID string, frozen bool) error {
	err := s.Store.Accounts().SetFrozen(ctx, targetID, frozen)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// RemoveUser hard-deletes the target account. Ledger records referencing it
// are retained; their sender/recipient ids simply stop resolving.
func (s *AdminService) RemoveUser(ctx context.Context, targetID string) error {
	err := s.Store.Accounts().DeleteAccount(ctx, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

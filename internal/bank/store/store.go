package store

import (
	"context"
	"errors"

	"github.com/cipware/securepay/internal/bank/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConditionFailed reports a guarded write whose condition didn't hold
	// (insufficient balance or frozen source). The caller decides which by
	// re-reading the row inside the same transaction.
	ErrConditionFailed = errors.New("store: condition failed")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and make it obvious
// which operations exist for which aggregate.
type Store interface {
	Accounts() Accounts
	Transactions() Transactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back when fn errors,
	// committed otherwise. Multi-step balance mutations (debit + credit +
	// ledger append) go through here so they apply as one atomic unit.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during login and transfer recipient lookup.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by the app via
	// ULID). A duplicate email yields ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// ListAccounts returns all accounts ordered by creation (newest first).
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpdateProfile mutates name/email and bumps updated_at. A duplicate
	// email yields ErrAlreadyExists.
	UpdateProfile(ctx context.Context, id, name, email string) error

	// Debit subtracts cents from the balance only when the account is not
	// frozen and holds at least that much; otherwise ErrConditionFailed.
	// This guarded single-statement write is what keeps concurrent
	// withdrawals from overdrawing an account.
	Debit(ctx context.Context, id string, cents int64) error

	// Credit adds cents to the balance. Frozen accounts can receive.
	Credit(ctx context.Context, id string, cents int64) error

	// SetFrozen flips the freeze flag.
	SetFrozen(ctx context.Context, id string, frozen bool) error

	// DeleteAccount hard-deletes; transaction records are retained.
	DeleteAccount(ctx context.Context, id string) error

	// SetMFASecret stores a pending TOTP secret (not yet enabled).
	SetMFASecret(ctx context.Context, id string, secret string) error

	// EnableMFA marks the stored secret active (sets mfa_enabled).
	EnableMFA(ctx context.Context, id string) error

	// DisableMFA clears both the secret and the enabled timestamp.
	DisableMFA(ctx context.Context, id string) error
}

type Transactions interface {
	// CreateTransaction appends one immutable ledger record. There are
	// deliberately no update or delete operations.
	CreateTransaction(ctx context.Context, t domain.Transaction) error

	// ListForAccount returns records where the account is sender or
	// recipient, newest first.
	ListForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

package domain

import "time"

// TransactionKind classifies a funds movement.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindTransfer   TransactionKind = "transfer"
)

// Transaction is one immutable ledger entry. Records are append-only: the
// store exposes no update or delete for them, and they outlive the accounts
// they reference (SenderID/RecipientID are stable identifiers, not guaranteed
// to resolve after an account is removed).
type Transaction struct {
	ID          string
	SenderID    string
	RecipientID *string // nil for withdrawals and deposits
	AmountCents int64   // always positive
	Currency    string  // ISO-4217 style 3-letter code
	Kind        TransactionKind
	CreatedAt   time.Time // engine-set, never client-supplied
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cipware/securepay/internal/bank/domain"
	"github.com/cipware/securepay/internal/bank/store"
	"github.com/cipware/securepay/pkg/idx"
)

// LedgerService moves money. Every mutation runs inside a store transaction
// so the balance change and its ledger record commit or abort together; the
// conditional debit inside the tx is what keeps a pair of concurrent
// withdrawals from overdrawing an account.
type LedgerService struct {
	Store store.Store

	// MinWithdrawalCents rejects dust withdrawals. Deposits and transfers
	// have no floor beyond being positive.
	MinWithdrawalCents int64
	DefaultCurrency    string
}

func (s *LedgerService) currency(c string) string {
	if c == "" {
		return s.DefaultCurrency
	}
	return c
}

// Transfer moves amountCents from the sender to the account registered under
// recipientEmail, recording exactly one transfer entry.
func (s *LedgerService) Transfer(ctx context.Context, senderID, recipientEmail string, amountCents int64, currency string) (domain.Transaction, error) {
	if amountCents <= 0 {
		return domain.Transaction{}, ErrAmountNotPositive
	}

	var rec domain.Transaction
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		recipient, err := tx.Accounts().GetAccountByEmail(ctx, recipientEmail)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRecipientNotFound
			}
			return fmt.Errorf("lookup recipient: %w", err)
		}
		if recipient.ID == senderID {
			return ErrSelfTransfer
		}

		if err := s.debit(ctx, tx, senderID, amountCents); err != nil {
			return err
		}
		if err := tx.Accounts().Credit(ctx, recipient.ID, amountCents); err != nil {
			return fmt.Errorf("credit recipient: %w", err)
		}

		rec = domain.Transaction{
			ID:          idx.New().String(),
			SenderID:    senderID,
			RecipientID: &recipient.ID,
			AmountCents: amountCents,
			Currency:    s.currency(currency),
			Kind:        domain.KindTransfer,
			CreatedAt:   time.Now().UTC(),
		}
		return tx.Transactions().CreateTransaction(ctx, rec)
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return rec, nil
}

// Withdraw debits the caller's own account. Amounts under the configured
// minimum are rejected before any store access.
func (s *LedgerService) Withdraw(ctx context.Context, accountID string, amountCents int64, currency string) (domain.Transaction, error) {
	if amountCents <= 0 {
		return domain.Transaction{}, ErrAmountNotPositive
	}
	if amountCents < s.MinWithdrawalCents {
		return domain.Transaction{}, ErrBelowMinimum
	}

	var rec domain.Transaction
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.debit(ctx, tx, accountID, amountCents); err != nil {
			return err
		}

		rec = domain.Transaction{
			ID:          idx.New().String(),
			SenderID:    accountID,
			AmountCents: amountCents,
			Currency:    s.currency(currency),
			Kind:        domain.KindWithdrawal,
			CreatedAt:   time.Now().UTC(),
		}
		return tx.Transactions().CreateTransaction(ctx, rec)
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return rec, nil
}

// Deposit credits the caller's own account. Inbound funds are allowed even
// while the account is frozen.
func (s *LedgerService) Deposit(ctx context.Context, accountID string, amountCents int64, currency string) (domain.Transaction, error) {
	if amountCents <= 0 {
		return domain.Transaction{}, ErrAmountNotPositive
	}

	var rec domain.Transaction
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().Credit(ctx, accountID, amountCents); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("credit account: %w", err)
		}

		rec = domain.Transaction{
			ID:          idx.New().String(),
			SenderID:    accountID,
			AmountCents: amountCents,
			Currency:    s.currency(currency),
			Kind:        domain.KindDeposit,
			CreatedAt:   time.Now().UTC(),
		}
		return tx.Transactions().CreateTransaction(ctx, rec)
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return rec, nil
}

// History lists the caller's ledger entries, newest first.
func (s *LedgerService) History(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return s.Store.Transactions().ListForAccount(ctx, accountID)
}

// debit runs the guarded debit and, when the guard fails, re-reads the row in
// the same tx to tell frozen apart from insufficient funds.
func (s *LedgerService) debit(ctx context.Context, tx store.Tx, accountID string, amountCents int64) error {
	err := tx.Accounts().Debit(ctx, accountID, amountCents)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrConditionFailed) {
		return fmt.Errorf("debit account: %w", err)
	}

	a, gerr := tx.Accounts().GetAccountByID(ctx, accountID)
	switch {
	case errors.Is(gerr, store.ErrNotFound):
		return ErrAccountNotFound
	case gerr != nil:
		return fmt.Errorf("reload account: %w", gerr)
	case a.Frozen:
		return ErrAccountFrozen
	default:
		return ErrInsufficientFunds
	}
}

package sqlite

import (
	"context"
	"database/sql"

	"github.com/cipware/securepay/internal/bank/domain"
)

type transactionsRepo struct {
	db dbtx
}

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, sender_id, recipient_id, amount_cents, currency, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.SenderID, mapOptionalString(t.RecipientID),
		t.AmountCents, t.Currency, string(t.Kind), t.CreatedAt.UTC(),
	)
	return err
}

func (r *transactionsRepo) ListForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_id, recipient_id, amount_cents, currency, kind, created_at
		FROM transactions
		WHERE sender_id = ? OR recipient_id = ?
		ORDER BY created_at DESC, id DESC`,
		accountID, accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var (
			t         domain.Transaction
			recipient sql.NullString
			kind      string
		)
		if err := rows.Scan(&t.ID, &t.SenderID, &recipient, &t.AmountCents, &t.Currency, &kind, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.RecipientID = mapNullStringPtr(recipient)
		t.Kind = domain.TransactionKind(kind)
		out = append(out, t)
	}
	return out, rows.Err()
}

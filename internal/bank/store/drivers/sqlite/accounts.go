package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cipware/securepay/internal/bank/domain"
	"github.com/cipware/securepay/internal/bank/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, name, email, password_hash, role, balance_cents, frozen, mfa_enabled, mfa_secret, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var (
		a          domain.Account
		role       string
		mfaEnabled sql.NullTime
		mfaSecret  sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &role,
		&a.BalanceCents, &a.Frozen, &mfaEnabled, &mfaSecret,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	a.Role = domain.Role(role)
	a.MFAEnabled = mapNullTimePtr(mfaEnabled)
	a.MFASecret = mapNullStringPtr(mfaSecret)
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, email, password_hash, role, balance_cents, frozen, mfa_enabled, mfa_secret, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role.String(),
		a.BalanceCents, a.Frozen, nil, nil, now, now,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id, name, email string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET name = ?, email = ?, updated_at = ? WHERE id = ?`,
		name, email, time.Now().UTC(), id,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

// Debit is the guarded balance write: the WHERE clause carries both the
// freeze check and the sufficient-funds check so check-and-update is one
// statement. Zero rows affected means the guard failed (or the account is
// gone); the caller disambiguates inside its transaction.
func (r *accountsRepo) Debit(ctx context.Context, id string, cents int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET balance_cents = balance_cents - ?, updated_at = ?
		WHERE id = ? AND frozen = 0 AND balance_cents >= ?`,
		cents, time.Now().UTC(), id, cents,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConditionFailed
	}
	return nil
}

func (r *accountsRepo) Credit(ctx context.Context, id string, cents int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET balance_cents = balance_cents + ?, updated_at = ? WHERE id = ?`,
		cents, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) SetFrozen(ctx context.Context, id string, frozen bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET frozen = ?, updated_at = ? WHERE id = ?`,
		frozen, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) SetMFASecret(ctx context.Context, id string, secret string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET mfa_secret = ?, mfa_enabled = NULL, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) EnableMFA(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET mfa_enabled = ?, updated_at = ? WHERE id = ? AND mfa_secret IS NOT NULL`,
		now, now, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) DisableMFA(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET mfa_enabled = NULL, mfa_secret = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow converts an update that matched nothing into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

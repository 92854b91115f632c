package domain

import "time"

// Account is a credential + balance + role + freeze-state record.
//
// BalanceCents carries the scale-2 monetary balance as integer cents and is
// never negative. Frozen blocks the account from being the source of any
// funds movement; it can still receive.
type Account struct {
	ID           string
	Name         string
	Email        string // unique, stored as given (case-sensitive)
	PasswordHash string // bcrypt encoded
	Role         Role
	BalanceCents int64
	Frozen       bool
	MFAEnabled   *time.Time // when TOTP was activated (nullable)
	MFASecret    *string    // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMFA reports whether a TOTP second factor is active on the account.
func (a Account) HasMFA() bool {
	return a.MFAEnabled != nil && a.MFASecret != nil && *a.MFASecret != ""
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cipware/securepay/internal/bank/store"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// MFAService manages the optional TOTP second factor. Enrollment is two-step:
// Enroll stores a pending secret, Activate proves possession of it before the
// factor starts gating logins.
type MFAService struct {
	Store  store.Store
	Issuer string
}

// MFAEnrollment is returned from Enroll; the URL is the otpauth:// string an
// authenticator app consumes.
type MFAEnrollment struct {
	Secret string
	URL    string
}

// Enroll generates a fresh TOTP secret for the account and stores it pending.
// Logins are unaffected until Activate succeeds.
func (s *MFAService) Enroll(ctx context.Context, accountID string) (MFAEnrollment, error) {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MFAEnrollment{}, ErrAccountNotFound
		}
		return MFAEnrollment{}, fmt.Errorf("lookup account: %w", err)
	}
	if a.HasMFA() {
		return MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: a.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return MFAEnrollment{}, fmt.Errorf("generate totp key: %w", err)
	}

	if err := s.Store.Accounts().SetMFASecret(ctx, accountID, key.Secret()); err != nil {
		return MFAEnrollment{}, fmt.Errorf("store totp secret: %w", err)
	}

	return MFAEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// Activate verifies a code against the pending secret and turns the factor on.
func (s *MFAService) Activate(ctx context.Context, accountID, code string) error {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if a.MFASecret == nil || *a.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if a.HasMFA() {
		return ErrMFAAlreadyEnabled
	}

	if !totp.Validate(code, *a.MFASecret) {
		return ErrInvalidOTP
	}

	return s.Store.Accounts().EnableMFA(ctx, accountID)
}

// Disable removes the second factor entirely. A valid current code is
// required so a hijacked session alone can't weaken the account.
func (s *MFAService) Disable(ctx context.Context, accountID, code string) error {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if !a.HasMFA() {
		return ErrMFANotEnrolled
	}

	if !totp.Validate(code, *a.MFASecret) {
		return ErrInvalidOTP
	}

	return s.Store.Accounts().DisableMFA(ctx, accountID)
}

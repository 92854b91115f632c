package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cipware/securepay/internal/bank/domain"
	"github.com/cipware/securepay/internal/bank/store"
	"github.com/cipware/securepay/pkg/cryptox"
	"github.com/cipware/securepay/pkg/idx"
	"github.com/cipware/securepay/pkg/jwtx"

	"github.com/pquerna/otp/totp"
)

// AccountService owns the account lifecycle: registration, login, and profile
// edits. Authorization (who may call what) is enforced at the HTTP layer; this
// layer enforces business rules only.
type AccountService struct {
	Store  store.Store
	Signer jwtx.Signer

	Issuer string
	// StartingBalanceCents is granted to every newly created account.
	StartingBalanceCents int64
	SessionTTL           time.Duration
}

// Register creates a self-service customer account. The role is fixed to
// customer here; only AdminService may pick a role.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (domain.Account, error) {
	return s.create(ctx, name, email, password, domain.RoleCustomer)
}

func (s *AccountService) create(ctx context.Context, name, email, password string, role domain.Role) (domain.Account, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	a := domain.Account{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		BalanceCents: s.StartingBalanceCents,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, a); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrEmailTaken
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return a, nil
}

// Login verifies credentials and mints a session token. Every failure mode
// (unknown email, bad password, missing or wrong OTP when MFA is active)
// reports ErrInvalidCredentials or the OTP sentinels; the caller collapses
// them to one response body.
func (s *AccountService) Login(ctx context.Context, email, password, otpCode string) (string, domain.Account, error) {
	a, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a bcrypt compare anyway so lookup misses and password
			// mismatches take comparable time.
			_ = cryptox.VerifyPassword(password, dummyHash)
			return "", domain.Account{}, ErrInvalidCredentials
		}
		return "", domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := cryptox.VerifyPassword(password, a.PasswordHash); err != nil {
		return "", domain.Account{}, ErrInvalidCredentials
	}

	if a.HasMFA() {
		if otpCode == "" {
			return "", domain.Account{}, ErrMFARequired
		}
		if !totp.Validate(otpCode, *a.MFASecret) {
			return "", domain.Account{}, ErrInvalidOTP
		}
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(a.ID, a.Role.String(), s.Issuer, ttl, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", domain.Account{}, fmt.Errorf("sign session token: %w", err)
	}

	return token, a, nil
}

// GetAccount fetches an account by id.
func (s *AccountService) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	a, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return a, nil
}

// UpdateProfile changes the caller's name and email.
func (s *AccountService) UpdateProfile(ctx context.Context, id, name, email string) (domain.Account, error) {
	err := s.Store.Accounts().UpdateProfile(ctx, id, name, email)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.Account{}, ErrEmailTaken
	case errors.Is(err, store.ErrNotFound):
		return domain.Account{}, ErrAccountNotFound
	case err != nil:
		return domain.Account{}, fmt.Errorf("update profile: %w", err)
	}
	return s.GetAccount(ctx, id)
}

// dummyHash is a valid bcrypt hash of an unguessable value, used only to keep
// login timing flat when the email doesn't resolve.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cipware/securepay/internal/bank/domain"
	"github.com/cipware/securepay/internal/bank/store/drivers/sqlite"
	"github.com/cipware/securepay/pkg/jwtx"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServices struct {
	Accounts *AccountService
	Ledger   *LedgerService
	Admin    *AdminService
	MFA      *MFAService
	Verifier jwtx.Verifier
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte(testSecret), "securepay-test")
	require.NoError(t, err)

	accounts := &AccountService{
		Store:                st,
		Signer:               signer,
		Issuer:               "securepay-test",
		StartingBalanceCents: 500000,
		SessionTTL:           time.Hour,
	}
	return testServices{
		Accounts: accounts,
		Ledger:   &LedgerService{Store: st, MinWithdrawalCents: 1000, DefaultCurrency: "ZAR"},
		Admin:    &AdminService{Store: st, Accounts: accounts},
		MFA:      &MFAService{Store: st, Issuer: "securepay-test"},
		Verifier: signer,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Accounts.Register(ctx, "Alice Smith", "alice@example.com", "Str0ngPass!x")
	require.NoError(t, err)
	require.Equal(t, domain.RoleCustomer, a.Role)
	require.Equal(t, int64(500000), a.BalanceCents)
	require.False(t, a.Frozen)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Accounts.Register(ctx, "Alice Smith", "alice@example.com", "Str0ngPass!x")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login success yields valid token", func(t *testing.T) {
		token, got, err := svc.Accounts.Login(ctx, "alice@example.com", "Str0ngPass!x", "")
		require.NoError(t, err)
		require.Equal(t, a.ID, got.ID)

		claims, err := svc.Verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, a.ID, claims.Subject)
		require.Equal(t, "customer", claims.Role)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, _, err := svc.Accounts.Login(ctx, "alice@example.com", "wrongpassword", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err2 := svc.Accounts.Login(ctx, "nobody@example.com", "Str0ngPass!x", "")
		require.ErrorIs(t, err2, ErrInvalidCredentials)
		require.Equal(t, err.Error(), err2.Error())
	})
}

func TestTransfer(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice, err := svc.Accounts.Register(ctx, "Alice Smith", "alice@example.com", "Str0ngPass!x")
	require.NoError(t, err)
	bob, err := svc.Accounts.Register(ctx, "Bob Jones", "bob@example.com", "Str0ngPass!x")
	require.NoError(t, err)

	t.Run("moves funds and records one entry", func(t *testing.T) {
		rec, err := svc.Ledger.Transfer(ctx, alice.ID, "bob@example.com", 100000, "ZAR")
		require.NoError(t, err)
		require.Equal(t, domain.KindTransfer, rec.Kind)
		require.NotNil(t, rec.RecipientID)
		require.Equal(t, bob.ID, *rec.RecipientID)

		a, err := svc.Accounts.GetAccount(ctx, alice.ID)
		require.NoError(t, err)
		b, err := svc.Accounts.GetAccount(ctx, bob.ID)
		require.NoError(t, err)
		require.Equal(t, int64(400000), a.BalanceCents)
		require.Equal(t, int64(600000), b.BalanceCents)
		require.Equal(t, int64(1000000), a.BalanceCents+b.BalanceCents)

		hist, err := svc.Ledger.History(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, hist, 1)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := svc.Ledger.Transfer(ctx, alice.ID, "ghost@example.com", 100, "ZAR")
		require.ErrorIs(t, err, ErrRecipientNotFound)
	})

	t.Run("self transfer", func(t *testing.T) {
		_, err := svc.Ledger.Transfer(ctx, alice.ID, "alice@example.com", 100, "ZAR")
		require.ErrorIs(t, err, ErrSelfTransfer)
	})

	t.Run("insufficient funds leaves balances untouched", func(t *testing.T) {
		_, err := svc.Ledger.Transfer(ctx, alice.ID, "bob@example.com", 99999999, "ZAR")
		require.ErrorIs(t, err, ErrInsufficientFunds)

		a, err := svc.Accounts.GetAccount(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, int64(400000), a.BalanceCents)

		hist, err := svc.Ledger.History(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, hist, 1) // no record for the failed attempt
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := svc.Ledger.Transfer(ctx, alice.ID, "bob@example.com", 0, "ZAR")
		require.ErrorIs(t, err, ErrAmountNotPositive)
	})

	t.Run("frozen sender cannot send", func(t *testing.T) {
		require.NoError(t, svc.Admin.SetFrozen(ctx, alice.ID, true))
		_, err := svc.Ledger.Transfer(ctx, alice.ID, "bob@example.com", 100, "ZAR")
		require.ErrorIs(t, err, ErrAccountFrozen)
	})

	t.Run("frozen recipient can still receive", func(t *testing.T) {
		_, err := svc.Ledger.Transfer(ctx, bob.ID, "alice@example.com", 5000, "ZAR")
		require.NoError(t, err)

		a, err := svc.Accounts.GetAccount(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, int64(405000), a.BalanceCents)
	})
}

func TestWithdrawAndDeposit(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Accounts.Register(ctx, "Carol King", "carol@example.com", "Str0ngPass!x")
	require.NoError(t, err)

	t.Run("withdraw below minimum", func(t *testing.T) {
		_, err := svc.Ledger.Withdraw(ctx, a.ID, 999, "ZAR")
		require.ErrorIs(t, err, ErrBelowMinimum)
	})

	t.Run("withdraw at minimum", func(t *testing.T) {
		rec, err := svc.Ledger.Withdraw(ctx, a.ID, 1000, "")
		require.NoError(t, err)
		require.Equal(t, domain.KindWithdrawal, rec.Kind)
		require.Nil(t, rec.RecipientID)
		require.Equal(t, "ZAR", rec.Currency) // default currency applied

		got, err := svc.Accounts.GetAccount(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, int64(499000), got.BalanceCents)
	})

	t.Run("withdraw more than balance", func(t *testing.T) {
		_, err := svc.Ledger.Withdraw(ctx, a.ID, 499001, "ZAR")
		require.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("deposit while frozen", func(t *testing.T) {
		require.NoError(t, svc.Admin.SetFrozen(ctx, a.ID, true))

		rec, err := svc.Ledger.Deposit(ctx, a.ID, 2500, "ZAR")
		require.NoError(t, err)
		require.Equal(t, domain.KindDeposit, rec.Kind)

		got, err := svc.Accounts.GetAccount(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, int64(501500), got.BalanceCents)
	})

	t.Run("frozen blocks withdrawal", func(t *testing.T) {
		_, err := svc.Ledger.Withdraw(ctx, a.ID, 1000, "ZAR")
		require.ErrorIs(t, err, ErrAccountFrozen)
	})
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Accounts.Register(ctx, "Gus Race", "gus@example.com", "Str0ngPass!x")
	require.NoError(t, err)

	// 20 goroutines race to withdraw 1000.00 each from a 5000.00 balance.
	// The guarded debit admits at most 5; every loser must fail cleanly with
	// insufficient funds, and no interleaving may drive the balance negative.
	const workers = 20
	const amount = int64(100000)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Ledger.Withdraw(ctx, a.ID, amount, "ZAR")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrInsufficientFunds)
	}
	require.Greater(t, succeeded, 0)
	require.LessOrEqual(t, succeeded, 5)

	got, err := svc.Accounts.GetAccount(ctx, a.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, got.BalanceCents, int64(0))
	require.Equal(t, 500000-amount*int64(succeeded), got.BalanceCents)

	// Exactly one ledger record per successful withdrawal, none for losers.
	hist, err := svc.Ledger.History(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, hist, succeeded)
}

func TestConcurrentTransfersConserveTotal(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	alice, err := svc.Accounts.Register(ctx, "Alice Smith", "alice@example.com", "Str0ngPass!x")
	require.NoError(t, err)
	bob, err := svc.Accounts.Register(ctx, "Bob Jones", "bob@example.com", "Str0ngPass!x")
	require.NoError(t, err)

	// Opposing transfer streams plus withdrawals, all racing. Whatever the
	// interleaving, money only moves or leaves through guarded debits, so the
	// combined total can only shrink by the recorded withdrawals.
	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Ledger.Transfer(ctx, alice.ID, "bob@example.com", 50000, "ZAR")
			_, _ = svc.Ledger.Transfer(ctx, bob.ID, "alice@example.com", 30000, "ZAR")
			_, _ = svc.Ledger.Withdraw(ctx, alice.ID, 10000, "ZAR")
		}()
	}
	wg.Wait()

	a, err := svc.Accounts.GetAccount(ctx, alice.ID)
	require.NoError(t, err)
	b, err := svc.Accounts.GetAccount(ctx, bob.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, a.BalanceCents, int64(0))
	require.GreaterOrEqual(t, b.BalanceCents, int64(0))

	var withdrawn int64
	hist, err := svc.Ledger.History(ctx, alice.ID)
	require.NoError(t, err)
	for _, rec := range hist {
		if rec.Kind == domain.KindWithdrawal {
			withdrawn += rec.AmountCents
		}
	}
	require.Equal(t, int64(1000000), a.BalanceCents+b.BalanceCents+withdrawn)
}

func TestAdminOperations(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	emp, err := svc.Admin.CreateUser(ctx, "Eve Admin", "eve@example.com", "Str0ngPass!x", domain.RoleEmployee)
	require.NoError(t, err)
	require.Equal(t, domain.RoleEmployee, emp.Role)

	cust, err := svc.Accounts.Register(ctx, "Dan Cust", "dan@example.com", "Str0ngPass!x")
	require.NoError(t, err)

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := svc.Admin.CreateUser(ctx, "X", "x@example.com", "Str0ngPass!x", domain.Role("root"))
		require.Error(t, err)
	})

	t.Run("list users", func(t *testing.T) {
		list, err := svc.Admin.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
	})

	t.Run("freeze unknown target", func(t *testing.T) {
		require.ErrorIs(t, svc.Admin.SetFrozen(ctx, "01JUNKJUNKJUNKJUNKJUNKJUNK", true), ErrAccountNotFound)
	})

	t.Run("remove keeps ledger records", func(t *testing.T) {
		_, err := svc.Ledger.Deposit(ctx, cust.ID, 100, "ZAR")
		require.NoError(t, err)

		require.NoError(t, svc.Admin.RemoveUser(ctx, cust.ID))
		_, err = svc.Accounts.GetAccount(ctx, cust.ID)
		require.ErrorIs(t, err, ErrAccountNotFound)

		hist, err := svc.Ledger.History(ctx, cust.ID)
		require.NoError(t, err)
		require.Len(t, hist, 1)

		require.ErrorIs(t, svc.Admin.RemoveUser(ctx, cust.ID), ErrAccountNotFound)
	})
}

func TestMFAFlow(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Accounts.Register(ctx, "Fay Totp", "fay@example.com", "Str0ngPass!x")
	require.NoError(t, err)

	t.Run("activate before enroll", func(t *testing.T) {
		require.ErrorIs(t, svc.MFA.Activate(ctx, a.ID, "000000"), ErrMFANotEnrolled)
	})

	enr, err := svc.MFA.Enroll(ctx, a.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enr.Secret)
	require.Contains(t, enr.URL, "otpauth://totp/")

	t.Run("pending secret does not gate login", func(t *testing.T) {
		_, _, err := svc.Accounts.Login(ctx, "fay@example.com", "Str0ngPass!x", "")
		require.NoError(t, err)
	})

	t.Run("activate with bad code", func(t *testing.T) {
		require.ErrorIs(t, svc.MFA.Activate(ctx, a.ID, "000000"), ErrInvalidOTP)
	})

	code, err := totp.GenerateCode(enr.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.MFA.Activate(ctx, a.ID, code))

	t.Run("login without code", func(t *testing.T) {
		_, _, err := svc.Accounts.Login(ctx, "fay@example.com", "Str0ngPass!x", "")
		require.ErrorIs(t, err, ErrMFARequired)
	})

	t.Run("login with bad code", func(t *testing.T) {
		_, _, err := svc.Accounts.Login(ctx, "fay@example.com", "Str0ngPass!x", "123456")
		require.ErrorIs(t, err, ErrInvalidOTP)
	})

	t.Run("login with valid code", func(t *testing.T) {
		code, err := totp.GenerateCode(enr.Secret, time.Now())
		require.NoError(t, err)
		_, _, err = svc.Accounts.Login(ctx, "fay@example.com", "Str0ngPass!x", code)
		require.NoError(t, err)
	})

	t.Run("disable requires valid code", func(t *testing.T) {
		require.ErrorIs(t, svc.MFA.Disable(ctx, a.ID, "123456"), ErrInvalidOTP)

		code, err := totp.GenerateCode(enr.Secret, time.Now())
		require.NoError(t, err)
		require.NoError(t, svc.MFA.Disable(ctx, a.ID, code))

		_, _, err = svc.Accounts.Login(ctx, "fay@example.com", "Str0ngPass!x", "")
		require.NoError(t, err)
	})
}

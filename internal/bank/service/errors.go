package service

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. Wording here is
// deliberately generic where leaking detail would help an attacker (login
// never says whether the email or the password was wrong).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountFrozen      = errors.New("account is frozen")
	ErrAmountNotPositive  = errors.New("amount must be positive")
	ErrBelowMinimum       = errors.New("amount below minimum")
	ErrSelfTransfer       = errors.New("cannot transfer to own account")
	ErrMFARequired        = errors.New("otp code required")
	ErrInvalidOTP         = errors.New("invalid otp code")
	ErrMFAAlreadyEnabled  = errors.New("mfa already enabled")
	ErrMFANotEnrolled     = errors.New("mfa not enrolled")
)

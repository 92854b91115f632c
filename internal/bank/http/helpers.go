package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cipware/securepay/internal/bank/domain"
	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/internal/bank/store"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/slogx"
	"github.com/cipware/securepay/pkg/validate"
)

// decodeAndValidate decodes the (already sanitized) body into dst and runs
// struct validation. It writes the 400 response itself and reports whether
// the handler should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validate.Validator, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := v.Struct(dst); err != nil {
		httpx.WriteFieldErrors(w, validate.Messages(err))
		return false
	}
	return true
}

// writeServiceError maps service sentinels onto status codes. Anything
// unexpected is logged and collapsed to a generic 500 so internals never
// reach the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrMFARequired),
		errors.Is(err, service.ErrInvalidOTP):
		httpx.WriteError(w, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRecipientNotFound),
		errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrAccountFrozen),
		errors.Is(err, service.ErrAmountNotPositive),
		errors.Is(err, service.ErrBelowMinimum),
		errors.Is(err, service.ErrSelfTransfer),
		errors.Is(err, service.ErrMFAAlreadyEnabled),
		errors.Is(err, service.ErrMFANotEnrolled):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAccountNotFound):
		httpx.WriteError(w, http.StatusNotFound, "account not found")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireEmployee gates a handler on the caller holding the employee role.
// The account is re-read from the store rather than trusting the token's
// role claim, so revocation and demotion take effect immediately. The 403
// body is opaque: it doesn't reveal whether the account is missing or merely
// under-privileged.
func requireEmployee(st store.Store, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httpx.AccountIDFromCtx(r.Context())
		if accountID == "" {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		a, err := st.Accounts().GetAccountByID(r.Context(), accountID)
		if err != nil || a.Role != domain.RoleEmployee {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// accountResponse is the external view of an account. There is deliberately
// no field for the password hash or the TOTP secret.
type accountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Balance   string `json:"balance"`
	Frozen    bool   `json:"frozen"`
	MFAActive bool   `json:"mfa_active"`
}

func toAccountResponse(a domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role.String(),
		Balance:   validate.FormatAmount(a.BalanceCents),
		Frozen:    a.Frozen,
		MFAActive: a.HasMFA(),
	}
}

// transactionResponse is the external view of one ledger entry.
type transactionResponse struct {
	ID          string  `json:"id"`
	SenderID    string  `json:"sender_id"`
	RecipientID *string `json:"recipient_id,omitempty"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	Kind        string  `json:"kind"`
	CreatedAt   string  `json:"created_at"`
}

func toTransactionResponse(t domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		SenderID:    t.SenderID,
		RecipientID: t.RecipientID,
		Amount:      validate.FormatAmount(t.AmountCents),
		Currency:    t.Currency,
		Kind:        string(t.Kind),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

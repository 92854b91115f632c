package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/validate"
)

type DepositHandler struct {
	Ledger   *service.LedgerService
	Validate *validate.Validator
}

type depositRequest struct {
	Amount   string `json:"amount" validate:"required,amountstr"`
	Currency string `json:"currency" validate:"omitempty,currency"`
}

// ServeHTTP credits the caller's own account. Deposits are accepted even
// while the account is frozen; freezing blocks outbound movement only.
//
//	@Summary		Deposit funds
//	@Description	Credits the caller's account and records one deposit entry.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	transactionResponse	"Recorded deposit"
//	@Failure		400	{object}	httpx.ErrorResponse	"Validation or business failure"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Failure		429	{object}	httpx.ErrorResponse	"Rate limited"
//	@Router			/api/payments/deposit [post].
func (h *DepositHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	cents, err := validate.ParseAmount(req.Amount)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	accountID := httpx.AccountIDFromCtx(r.Context())
	rec, err := h.Ledger.Deposit(r.Context(), accountID, cents, req.Currency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTransactionResponse(rec))
}

package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/validate"
)

type WithdrawHandler struct {
	Ledger   *service.LedgerService
	Validate *validate.Validator
}

type withdrawRequest struct {
	Amount   string `json:"amount" validate:"required,amountstr"`
	Currency string `json:"currency" validate:"omitempty,currency"`
}

// ServeHTTP withdraws funds from the caller's own account.
//
//	@Summary		Withdraw funds
//	@Description	Debits the caller's account and records one withdrawal entry. Amounts under the configured minimum are rejected.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	transactionResponse	"Recorded withdrawal"
//	@Failure		400	{object}	httpx.ErrorResponse	"Validation or business failure"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Failure		429	{object}	httpx.ErrorResponse	"Rate limited"
//	@Router			/api/payments/withdraw [post].
func (h *WithdrawHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	cents, err := validate.ParseAmount(req.Amount)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	accountID := httpx.AccountIDFromCtx(r.Context())
	rec, err := h.Ledger.Withdraw(r.Context(), accountID, cents, req.Currency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTransactionResponse(rec))
}

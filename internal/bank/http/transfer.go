package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/validate"
)

type TransferHandler struct {
	Ledger   *service.LedgerService
	Validate *validate.Validator
}

type transferRequest struct {
	RecipientEmail string `json:"recipient_email" validate:"required,email_loose"`
	Amount         string `json:"amount" validate:"required,amountstr"`
	Currency       string `json:"currency" validate:"omitempty,currency"`
}

// ServeHTTP moves funds from the caller to another account.
//
//	@Summary		Transfer funds
//	@Description	Debits the caller and credits the recipient atomically, recording one ledger entry.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	transactionResponse	"Recorded transfer"
//	@Failure		400	{object}	httpx.ErrorResponse	"Validation or business failure"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Failure		429	{object}	httpx.ErrorResponse	"Rate limited"
//	@Router			/api/payments/transfer [post].
func (h *TransferHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	cents, err := validate.ParseAmount(req.Amount)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	senderID := httpx.AccountIDFromCtx(r.Context())
	rec, err := h.Ledger.Transfer(r.Context(), senderID, req.RecipientEmail, cents, req.Currency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTransactionResponse(rec))
}

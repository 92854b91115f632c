package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/slogx"
)

type HistoryHandler struct {
	Ledger *service.LedgerService
}

// ServeHTTP lists the caller's ledger entries, newest first. Entries where
// the caller is the recipient are included.
//
//	@Summary		Transaction history
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		transactionResponse	"Ledger entries, newest first"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Router			/api/payments/history [get].
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	accountID := httpx.AccountIDFromCtx(r.Context())

	list, err := h.Ledger.History(r.Context(), accountID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("list history", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/idx"
	"github.com/cipware/securepay/pkg/validate"
)

type AdminFreezeHandler struct {
	Admin    *service.AdminService
	Validate *validate.Validator
}

type freezeRequest struct {
	Frozen *bool `json:"frozen" validate:"required"`
}

// ServeHTTP sets the freeze flag on the target account and returns the
// updated account. No ledger entry is written; freezing is account state,
// not a funds movement.
//
//	@Summary		Freeze or unfreeze an account
//	@Tags			Employees
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	accountResponse		"Updated account"
//	@Failure		400	{object}	httpx.ErrorResponse	"Validation failure"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorResponse	"Caller is not an employee"
//	@Failure		404	{object}	httpx.ErrorResponse	"Unknown account"
//	@Router			/api/employees/users/{id}/freeze [patch].
func (h *AdminFreezeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "account not found")
		return
	}

	var req freezeRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	if err := h.Admin.SetFrozen(r.Context(), id.String(), *req.Frozen); err != nil {
		writeServiceError(w, r, err)
		return
	}

	a, err := h.Admin.Accounts.GetAccount(r.Context(), id.String())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

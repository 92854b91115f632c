package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/validate"
)

type MeHandler struct {
	Accounts *service.AccountService
}

// ServeHTTP returns the caller's own account.
//
//	@Summary		Current account
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	accountResponse		"Account"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Router			/api/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	accountID := httpx.AccountIDFromCtx(r.Context())

	a, err := h.Accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

type UpdateProfileHandler struct {
	Accounts *service.AccountService
	Validate *validate.Validator
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"required,acctname"`
	Email string `json:"email" validate:"required,email_loose"`
}

// ServeHTTP updates the caller's name and email. Passwords and roles are not
// editable here.
//
//	@Summary		Update profile
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	accountResponse		"Updated account"
//	@Failure		400	{object}	httpx.ErrorResponse	"Validation failure or duplicate email"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Router			/api/me [patch].
func (h *UpdateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	accountID := httpx.AccountIDFromCtx(r.Context())
	a, err := h.Accounts.UpdateProfile(r.Context(), accountID, req.Name, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

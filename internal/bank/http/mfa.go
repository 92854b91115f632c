package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/validate"
)

type MFAHandler struct {
	MFA      *service.MFAService
	Validate *validate.Validator
}

type mfaEnrollResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

type mfaCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// Enroll generates a pending TOTP secret for the caller.
//
//	@Summary		Enroll TOTP
//	@Description	Generates a TOTP secret and otpauth URL. The factor stays inactive until activated with a valid code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	mfaEnrollResponse	"Pending secret"
//	@Failure		400	{object}	httpx.ErrorResponse	"Already enabled"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Router			/api/mfa/totp/enroll [post].
func (h *MFAHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	accountID := httpx.AccountIDFromCtx(r.Context())

	enr, err := h.MFA.Enroll(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, mfaEnrollResponse{Secret: enr.Secret, URL: enr.URL})
}

// Activate proves possession of the pending secret and turns the factor on.
//
//	@Summary		Activate TOTP
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Success		204	"Factor active"
//	@Failure		400	{object}	httpx.ErrorResponse	"Invalid code or not enrolled"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Router			/api/mfa/totp/activate [post].
func (h *MFAHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req mfaCodeRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	accountID := httpx.AccountIDFromCtx(r.Context())
	if err := h.MFA.Activate(r.Context(), accountID, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Disable removes the factor. A valid current code is required.
//
//	@Summary		Disable TOTP
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Success		204	"Factor removed"
//	@Failure		400	{object}	httpx.ErrorResponse	"Invalid code or not enrolled"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Router			/api/mfa/totp [delete].
func (h *MFAHandler) Disable(w http.ResponseWriter, r *http.Request) {
	var req mfaCodeRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	accountID := httpx.AccountIDFromCtx(r.Context())
	if err := h.MFA.Disable(r.Context(), accountID, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

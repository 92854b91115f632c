package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/validate"
)

type LoginHandler struct {
	Accounts *service.AccountService
	Validate *validate.Validator
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email_loose"`
	Password string `json:"password" validate:"required,loginpwd"`
	OTP      string `json:"otp" validate:"omitempty,len=6,numeric"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

// ServeHTTP handles credential login. Every failure, whether the email is
// unknown, the password wrong, or the OTP missing or invalid, produces the
// same generic body so nothing is confirmed to a prober.
//
//	@Summary		Log in
//	@Description	Exchanges email + password (and an OTP code when MFA is active) for a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	loginResponse		"Session token and account"
//	@Failure		400	{object}	httpx.ErrorResponse	"Invalid credentials"
//	@Failure		429	{object}	httpx.ErrorResponse	"Rate limited"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	token, a, err := h.Accounts.Login(r.Context(), req.Email, req.Password, req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Token:   token,
		Account: toAccountResponse(a),
	})
}

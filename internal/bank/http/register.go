package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/validate"
)

type RegisterHandler struct {
	Accounts *service.AccountService
	Validate *validate.Validator
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,acctname"`
	Email    string `json:"email" validate:"required,email_loose"`
	Password string `json:"password" validate:"required,strongpwd"`
}

// ServeHTTP handles self-service registration. The request carries no role
// field; every account created here is a customer.
//
//	@Summary		Register a new account
//	@Description	Creates a customer account with the configured starting balance.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	accountResponse			"Created account"
//	@Failure		400	{object}	httpx.ErrorResponse		"Validation failure or duplicate email"
//	@Failure		429	{object}	httpx.ErrorResponse		"Rate limited"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	a, err := h.Accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(a))
}

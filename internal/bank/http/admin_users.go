package http

import (
	"net/http"

	"github.com/cipware/securepay/internal/bank/domain"
	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/idx"
	"github.com/cipware/securepay/pkg/validate"
)

type AdminUsersHandler struct {
	Admin    *service.AdminService
	Validate *validate.Validator
}

type adminCreateRequest struct {
	Name     string `json:"name" validate:"required,acctname"`
	Email    string `json:"email" validate:"required,email_loose"`
	Password string `json:"password" validate:"required,strongpwd"`
	Role     string `json:"role" validate:"required,role"`
}

// List returns every account. Password hashes and TOTP secrets never leave
// the service layer.
//
//	@Summary		List accounts
//	@Tags			Employees
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		accountResponse		"All accounts"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorResponse	"Caller is not an employee"
//	@Router			/api/employees/users [get].
func (h *AdminUsersHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Admin.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]accountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Create makes an account with an explicit role.
//
//	@Summary		Create an account
//	@Tags			Employees
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	accountResponse		"Created account"
//	@Failure		400	{object}	httpx.ErrorResponse	"Validation failure or duplicate email"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorResponse	"Caller is not an employee"
//	@Router			/api/employees/users [post].
func (h *AdminUsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req adminCreateRequest
	if !decodeAndValidate(w, r, h.Validate, &req) {
		return
	}

	a, err := h.Admin.CreateUser(r.Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(a))
}

type adminDeleteResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

// Delete hard-removes an account. Its ledger records are retained.
//
//	@Summary		Remove an account
//	@Tags			Employees
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	adminDeleteResponse	"Account removed"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorResponse	"Caller is not an employee"
//	@Failure		404	{object}	httpx.ErrorResponse	"Unknown account"
//	@Router			/api/employees/users/{id} [delete].
func (h *AdminUsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "account not found")
		return
	}

	if err := h.Admin.RemoveUser(r.Context(), id.String()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminDeleteResponse{ID: id.String(), Removed: true})
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/internal/bank/store"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/jwtx"
	"github.com/cipware/securepay/pkg/slogx"
	"github.com/cipware/securepay/pkg/validate"

	_ "github.com/cipware/securepay/api/bank" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits configures the per-profile rate limiters. The limiters themselves
// are constructed by the caller and injected so tests can drive the clock.
type Limits struct {
	// Strict guards the unauthenticated credential endpoints.
	Strict *httpx.SlidingWindowLimiter
	// Lenient guards authenticated mutations, keyed per account.
	Lenient *httpx.SlidingWindowLimiter
	// GlobalPerWindow is the coarse token-bucket rate for read/public routes.
	GlobalPerWindow int
	GlobalWindow    time.Duration
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier jwtx.Verifier
	validate *validate.Validator
	logger   *slog.Logger
	limits   Limits

	startTime    time.Time
	buildVersion string

	store          store.Store
	AccountService *service.AccountService
	LedgerService  *service.LedgerService
	AdminService   *service.AdminService
	MFAService     *service.MFAService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	limits Limits,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		validate:     validate.New(),
		logger:       logger,
		limits:       limits,
		startTime:    time.Now(),
		buildVersion: buildVersion,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPayments()
	r.registerProfile()
	r.registerMFA()
	r.registerEmployees()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpx.Chain(httpSwagger.Handler(), r.global()))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			SecurePay Core API
//	@version		0.1.0
//	@description	Transactional and security core for a small retail bank: account
//	@description	issuance, session tokens, balance mutations and an append-only
//	@description	transaction ledger.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// global is the coarse token-bucket profile for reads and public routes.
func (r *Router) global() httpx.Middleware {
	return httpx.RateLimitByIPBucket(r.limits.GlobalPerWindow, r.limits.GlobalWindow)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{Accounts: r.AccountService, Validate: r.validate}
	loginHandler := &LoginHandler{Accounts: r.AccountService, Validate: r.validate}

	// Credential endpoints take the strict sliding window keyed by client IP;
	// a rejected attempt is not recorded, so probing doesn't extend the ban.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimit(r.limits.Strict, httpx.IPKeyExtractor),
			httpx.SanitizeBody(),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimit(r.limits.Strict, httpx.IPKeyExtractor),
			httpx.SanitizeBody(),
		),
	)
}

// secured wires the standard chain for an authenticated mutation. Chain puts
// the first middleware outermost, so requests pass Authn, then the lenient
// rate limit, then sanitization; auth has to run first because the limiter
// keys on the authenticated account id.
func (r *Router) secured(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.Authn(r.verifier),
		httpx.RateLimit(r.limits.Lenient, httpx.AccountKeyExtractor),
		httpx.SanitizeBody(),
	)
}

func (r *Router) registerPayments() {
	transferHandler := &TransferHandler{Ledger: r.LedgerService, Validate: r.validate}
	withdrawHandler := &WithdrawHandler{Ledger: r.LedgerService, Validate: r.validate}
	depositHandler := &DepositHandler{Ledger: r.LedgerService, Validate: r.validate}
	historyHandler := &HistoryHandler{Ledger: r.LedgerService}

	r.Mux.Handle("POST /api/payments/transfer", r.secured(transferHandler))
	r.Mux.Handle("POST /api/payments/withdraw", r.secured(withdrawHandler))
	r.Mux.Handle("POST /api/payments/deposit", r.secured(depositHandler))

	r.Mux.Handle("GET /api/payments/history",
		httpx.Chain(historyHandler,
			httpx.Authn(r.verifier),
			r.global(),
		),
	)
}

func (r *Router) registerProfile() {
	meHandler := &MeHandler{Accounts: r.AccountService}
	updateHandler := &UpdateProfileHandler{Accounts: r.AccountService, Validate: r.validate}

	r.Mux.Handle("GET /api/me",
		httpx.Chain(meHandler,
			httpx.Authn(r.verifier),
			r.global(),
		),
	)
	r.Mux.Handle("PATCH /api/me", r.secured(updateHandler))
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFA: r.MFAService, Validate: r.validate}

	r.Mux.Handle("POST /api/mfa/totp/enroll", r.secured(http.HandlerFunc(h.Enroll)))
	r.Mux.Handle("POST /api/mfa/totp/activate", r.secured(http.HandlerFunc(h.Activate)))
	r.Mux.Handle("DELETE /api/mfa/totp", r.secured(http.HandlerFunc(h.Disable)))
}

func (r *Router) registerEmployees() {
	usersHandler := &AdminUsersHandler{Admin: r.AdminService, Validate: r.validate}
	freezeHandler := &AdminFreezeHandler{Admin: r.AdminService, Validate: r.validate}

	// All employee routes layer the role check over the standard chain. The
	// role is re-read from the store so a stale token can't outlive a
	// demotion.
	employee := func(h http.Handler) http.Handler {
		return r.secured(requireEmployee(r.store, h))
	}

	r.Mux.Handle("GET /api/employees/users", employee(http.HandlerFunc(usersHandler.List)))
	r.Mux.Handle("POST /api/employees/users", employee(http.HandlerFunc(usersHandler.Create)))
	r.Mux.Handle("DELETE /api/employees/users/{id}", employee(http.HandlerFunc(usersHandler.Delete)))
	r.Mux.Handle("PATCH /api/employees/users/{id}/freeze", employee(freezeHandler))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", httpx.Chain(&LivezHandler{
		BuildVersion: r.buildVersion,
		StartTime:    r.startTime,
	}, r.global()))

	r.Mux.Handle("GET /readyz", httpx.Chain(&ReadyzHandler{Store: r.store}, r.global()))
}

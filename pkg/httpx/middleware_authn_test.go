package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func authnHarness(t *testing.T) (*jwtx.HS256, http.Handler, *string, *string) {
	t.Helper()

	h, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "securepay-test")
	require.NoError(t, err)

	var gotID, gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = httpx.AccountIDFromCtx(r.Context())
		gotRole = httpx.RoleFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return h, httpx.Chain(inner, httpx.Authn(h)), &gotID, &gotRole
}

func TestAuthnAttachesIdentity(t *testing.T) {
	t.Parallel()

	h, handler, gotID, gotRole := authnHarness(t)

	raw, err := h.Sign(jwtx.NewSessionClaims("acct-1", "employee", "securepay-test", time.Hour, time.Now()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "acct-1", *gotID)
	require.Equal(t, "employee", *gotRole)
}

func TestAuthnUniform401(t *testing.T) {
	t.Parallel()

	h, handler, _, _ := authnHarness(t)

	expired, err := h.Sign(jwtx.NewSessionClaims("acct-1", "customer", "securepay-test", time.Hour, time.Now().Add(-2*time.Hour)))
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
		"expired token":  "Bearer " + expired,
	}

	var bodies []string
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	// Every failure mode must produce the identical body so callers can't
	// probe which check failed.
	for _, b := range bodies {
		require.Equal(t, bodies[0], b)
	}
}

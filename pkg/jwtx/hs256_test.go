package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "securepay-test"

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256([]byte("too-short"), testIssuer)
	require.Error(t, err)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	claims := NewSessionClaims("01ARZ3NDEKTSV4RRFFQ69G5FAV", "customer", testIssuer, DefaultSessionTTL, time.Now())
	raw, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", got.Subject)
	require.Equal(t, "customer", got.Role)
}

func TestVerifyExpiryWindow(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	t.Run("accepted just before the hour is up", func(t *testing.T) {
		issued := time.Now().Add(-59 * time.Minute)
		raw, err := h.Sign(NewSessionClaims("acct", "customer", testIssuer, time.Hour, issued))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.NoError(t, err)
	})

	t.Run("rejected just after the hour is up", func(t *testing.T) {
		issued := time.Now().Add(-61 * time.Minute)
		raw, err := h.Sign(NewSessionClaims("acct", "customer", testIssuer, time.Hour, issued))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestVerifyRejectsTampering(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	raw, err := h.Sign(NewSessionClaims("acct", "customer", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewHS256([]byte("ffffffffffffffffffffffffffffffff"), testIssuer)
		require.NoError(t, err)

		_, err = other.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidSig)
	})

	t.Run("mangled payload", func(t *testing.T) {
		parts := strings.Split(raw, ".")
		require.Len(t, parts, 3)
		mangled := parts[0] + ".eyJyb2xlIjoiZW1wbG95ZWUifQ." + parts[2]

		_, err := h.Verify(mangled)
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := h.Verify("not-a-jwt")
		require.ErrorIs(t, err, ErrMalformed)
	})
}

func TestVerifyIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(testSecret(), "someone-else")
	require.NoError(t, err)
	verifier, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	raw, err := signer.Sign(NewSessionClaims("acct", "customer", "someone-else", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrIssuer)
}

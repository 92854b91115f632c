package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Abc123!@#$")
	require.NoError(t, err)
	require.NotEqual(t, "Abc123!@#$", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	require.NoError(t, VerifyPassword("Abc123!@#$", hash))
	require.Error(t, VerifyPassword("abc123!@#$", hash))
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("Abc123!@#$")
	require.NoError(t, err)
	second, err := HashPassword("Abc123!@#$")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestHashPasswordRejectsOversizedInput(t *testing.T) {
	t.Parallel()

	_, err := HashPassword(strings.Repeat("x", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

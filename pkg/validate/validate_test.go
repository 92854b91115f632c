package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Name     string `json:"name" validate:"required,acctname"`
	Email    string `json:"email" validate:"required,email_loose"`
	Password string `json:"password" validate:"required,strongpwd"`
}

type paymentForm struct {
	Amount    string `json:"amount" validate:"required,amountstr"`
	Currency  string `json:"currency" validate:"required,currency"`
	Recipient string `json:"recipient" validate:"required,recipient"`
}

func TestRegisterFormValidation(t *testing.T) {
	t.Parallel()
	v := New()

	t.Run("accepts a valid form", func(t *testing.T) {
		err := v.Struct(registerForm{Name: "Alice Smith", Email: "alice@example.com", Password: "Abc123!@#$"})
		require.NoError(t, err)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		err := v.Struct(registerForm{Name: "Alice Smith", Email: "alice@example.com", Password: "abc12"})
		require.Error(t, err)
		require.Contains(t, Messages(err), "password")
	})

	t.Run("password needs every character class", func(t *testing.T) {
		for _, pw := range []string{"alllowercase1!", "ALLUPPERCASE1!", "NoDigitsHere!", "NoSymbols123"} {
			err := v.Struct(registerForm{Name: "Alice Smith", Email: "alice@example.com", Password: pw})
			require.Error(t, err, "password %q should fail", pw)
		}
	})

	t.Run("rejects bad names", func(t *testing.T) {
		for _, name := range []string{"A", "alice<script>", "1234", ""} {
			err := v.Struct(registerForm{Name: name, Email: "alice@example.com", Password: "Abc123!@#$"})
			require.Error(t, err, "name %q should fail", name)
		}
	})

	t.Run("rejects bad emails", func(t *testing.T) {
		for _, email := range []string{"no-at-sign", "a@b", "a@b.c", "spaces @b.com"} {
			err := v.Struct(registerForm{Name: "Alice Smith", Email: email, Password: "Abc123!@#$"})
			require.Error(t, err, "email %q should fail", email)
		}
	})
}

func TestPaymentFormValidation(t *testing.T) {
	t.Parallel()
	v := New()

	valid := paymentForm{Amount: "5.50", Currency: "ZAR", Recipient: "John Smith"}
	require.NoError(t, v.Struct(valid))

	t.Run("amount rules", func(t *testing.T) {
		for _, amt := range []string{"0.00", "0", "-5.00", "5.123", "12345678901", "abc"} {
			form := valid
			form.Amount = amt
			require.Error(t, v.Struct(form), "amount %q should fail", amt)
		}
		for _, amt := range []string{"5.50", "0.01", "1000", "9999999999.99"} {
			form := valid
			form.Amount = amt
			require.NoError(t, v.Struct(form), "amount %q should pass", amt)
		}
	})

	t.Run("currency rules", func(t *testing.T) {
		for _, cur := range []string{"zar", "ZA", "ZARR", "Z4R"} {
			form := valid
			form.Currency = cur
			require.Error(t, v.Struct(form), "currency %q should fail", cur)
		}
	})

	t.Run("recipient rules", func(t *testing.T) {
		form := valid
		form.Recipient = "O'Brien, J.-P"
		require.NoError(t, v.Struct(form))

		form.Recipient = "x"
		require.Error(t, v.Struct(form))
		form.Recipient = "bad<tag>"
		require.Error(t, v.Struct(form))
	})
}

func TestMessagesUseJSONFieldNames(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Struct(registerForm{Name: "", Email: "bad", Password: "short"})
	require.Error(t, err)

	msgs := Messages(err)
	require.Contains(t, msgs, "name")
	require.Contains(t, msgs, "email")
	require.Contains(t, msgs, "password")
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		cents int64
	}{
		{"5.50", 550},
		{"5.5", 550},
		{"1000", 100000},
		{"0.01", 1},
		{"9999999999.99", 999999999999},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.cents, got, tc.in)
	}

	for _, bad := range []string{"0.00", "-1", "5.123", "", "1e5"} {
		_, err := ParseAmount(bad)
		require.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	require.Equal(t, "5.50", FormatAmount(550))
	require.Equal(t, "0.01", FormatAmount(1))
	require.Equal(t, "1000.00", FormatAmount(100000))
	require.Equal(t, "-3.07", FormatAmount(-307))
}

package validate

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidAmount reports an amount string that fails the amount rule.
var ErrInvalidAmount = errors.New("validate: invalid amount")

// ParseAmount converts a validated decimal amount string into integer cents.
// Money is carried as int64 cents everywhere past this point; floats never
// touch a balance.
func ParseAmount(s string) (int64, error) {
	if !amountPattern.MatchString(s) || strings.Trim(s, "0.") == "" {
		return 0, ErrInvalidAmount
	}

	whole, frac, _ := strings.Cut(s, ".")

	// Pad the fractional part out to exactly two digits.
	switch len(frac) {
	case 0:
		frac = "00"
	case 1:
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return units*100 + cents, nil
}

// FormatAmount renders integer cents back into the scale-2 wire form.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

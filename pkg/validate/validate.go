// Package validate holds the request field validation rules. It wraps a
// single validator.v10 instance with banking-specific tags so request DTOs
// declare their rules inline and handlers get field-keyed error messages.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	namePattern      = regexp.MustCompile(`^[A-Za-z\s]{2,40}$`)
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	amountPattern    = regexp.MustCompile(`^\d{1,10}(\.\d{1,2})?$`)
	currencyPattern  = regexp.MustCompile(`^[A-Z]{3}$`)
	recipientPattern = regexp.MustCompile(`^[A-Za-z0-9\s,.'\-]{2,50}$`)

	// Symbol set accepted by the strong password rule.
	passwordSymbols = `@$!%*?&#^()_+-=[]{}|;:,.<>/\`
)

// messages maps a validation tag to the client-facing message. One message
// per tag; the field name comes from the json tag.
var messages = map[string]string{
	"required":    "is required",
	"acctname":    "must be 2-40 letters and spaces",
	"email_loose": "is not a valid email address",
	"strongpwd":   "must be at least 10 characters with uppercase, lowercase, number and special character",
	"loginpwd":    "is not a valid password",
	"amountstr":   "is not a valid amount",
	"currency":    "must be a 3-letter uppercase currency code",
	"recipient":   "must be 2-50 characters of letters, numbers and basic punctuation",
	"role":        "must be customer or employee",
	"len":         "has the wrong length",
}

// Validator validates request structs against the registered banking tags.
type Validator struct {
	v *validator.Validate
}

// New builds the validator and registers every custom tag. Call once at
// startup and share; the instance is safe for concurrent use.
func New() *Validator {
	v := validator.New()

	// Report json field names in errors instead of Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	must("acctname", matchString(namePattern))
	must("email_loose", matchString(emailPattern))
	must("strongpwd", strongPassword)
	must("loginpwd", loginPassword)
	must("amountstr", amountString)
	must("currency", matchString(currencyPattern))
	must("recipient", matchString(recipientPattern))
	must("role", roleString)

	return &Validator{v: v}
}

// Struct validates s and returns a validator error on failure.
func (vl *Validator) Struct(s any) error {
	return vl.v.Struct(s)
}

// Messages converts a validation error into field -> message pairs for the
// response body. Unknown errors collapse to a generic payload message.
func Messages(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"payload": "is invalid"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		out[fe.Field()] = msg
	}
	return out
}

// First returns a single "field message" string for APIs that respond with
// one error line, taking the first failed field.
func First(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	msg, ok := messages[fe.Tag()]
	if !ok {
		msg = "is invalid"
	}
	return fe.Field() + " " + msg
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// strongPassword enforces the registration policy: at least 10 characters
// containing lowercase, uppercase, a digit and one symbol from the accepted
// set. RE2 has no lookahead, so the class checks are explicit flags.
func strongPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 10 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// loginPassword is deliberately looser than the registration rule: only a
// minimum length, so legacy passwords keep working if the strong pattern
// ever drifts.
func loginPassword(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) >= 8
}

// amountString accepts up to 10 integer digits and 2 decimals, and rejects
// amounts that are all zeros ("0", "0.00", ...).
func amountString(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !amountPattern.MatchString(s) {
		return false
	}
	return strings.Trim(s, "0.") != ""
}

func roleString(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "customer", "employee":
		return true
	}
	return false
}

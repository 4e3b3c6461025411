package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"fulfillment/internal/pkg/errs"
)

// NormalizePhone keeps the digits of raw and returns the 10-digit national
// number. An 11-digit number with a leading country code 1 is accepted.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case digits == "":
		return "", errs.NewValueIsRequiredError("phone")
	case len(digits) == 11 && digits[0] == '1':
		return digits[1:], nil
	case len(digits) == 10:
		return digits, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q does not contain a 10-digit number", raw))
	}
}

package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	localPhonePattern  = regexp.MustCompile(`^0\d{9}$`)
	mpesaPhonePattern  = regexp.MustCompile(`^254\d{9}$`)
	digitsOnlyStripper = regexp.MustCompile(`[\s\-+]`)
)

// ValidatePhoneNumber validates a Kenyan mobile number and normalizes it to
// the 254XXXXXXXXX form expected by the payment gateway. Accepted inputs are
// the local 10 digit form (0XXXXXXXXX) and the international 12 digit form
// (254XXXXXXXXX). Anything else is rejected.
func ValidatePhoneNumber(phone string) (string, error) {
	stripped := digitsOnlyStripper.ReplaceAllString(phone, "")

	switch {
	case localPhonePattern.MatchString(stripped):
		return "254" + stripped[1:], nil
	case mpesaPhonePattern.MatchString(stripped):
		return stripped, nil
	default:
		return "", fmt.Errorf("invalid phone number format: expected 0XXXXXXXXX or 254XXXXXXXXX")
	}
}

// FormatPhoneNumber is a best effort normalization used when the number has
// already passed validation upstream. Unlike ValidatePhoneNumber it never
// rejects: a leading 0 is swapped for 254, a 254 prefix is kept, and any
// other shape gets 254 prepended.
func FormatPhoneNumber(phone string) string {
	stripped := digitsOnlyStripper.ReplaceAllString(phone, "")

	if strings.HasPrefix(stripped, "0") {
		return "254" + stripped[1:]
	}
	if strings.HasPrefix(stripped, "254") {
		return stripped
	}
	return "254" + stripped
}

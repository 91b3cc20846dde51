package service

import (
	"fmt"
	"strings"
)

// NormalizePhone folds a transport-supplied phone number into the canonical
// 7XXXXXXXXXX form: strip every non-digit, fold a leading 7/8 country code,
// keep the trailing ten digits. "+7 900 123-45-67" becomes "79001234567".
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) < 10 {
		return "", fmt.Errorf("phone %q: too few digits", raw)
	}
	if strings.HasPrefix(digits, "7") || strings.HasPrefix(digits, "8") {
		return "7" + digits[len(digits)-10:], nil
	}
	return "7" + digits, nil
}

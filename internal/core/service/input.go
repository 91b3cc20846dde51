package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InputValidator checks wizard inputs: normalized phones, display names,
// and referral codes. Referral codes are a fixed-length alphanumeric string
// with an optional fixed prefix, configured at startup.
type InputValidator struct {
	v          *validator.Validate
	refPattern *regexp.Regexp
}

// NewInputValidator builds the validator. prefix may be empty; codeLen is
// the alphanumeric length after the prefix.
func NewInputValidator(prefix string, codeLen int) *InputValidator {
	if codeLen <= 0 {
		codeLen = 8
	}
	pattern := fmt.Sprintf(`(?i)^%s[A-Z0-9]{%d}$`, regexp.QuoteMeta(prefix), codeLen)
	return &InputValidator{
		v:          validator.New(),
		refPattern: regexp.MustCompile(pattern),
	}
}

type phoneInput struct {
	Phone string `validate:"required,len=11,numeric"`
}

// Phone validates an already-normalized phone number.
func (iv *InputValidator) Phone(phone string) error {
	return iv.v.Struct(phoneInput{Phone: phone})
}

type nameInput struct {
	Name string `validate:"required,min=2,max=64"`
}

// DisplayName validates a registration or rename input.
func (iv *InputValidator) DisplayName(name string) error {
	return iv.v.Struct(nameInput{Name: strings.TrimSpace(name)})
}

// ReferralCode reports whether s matches the configured code format and
// returns its canonical uppercase form.
func (iv *InputValidator) ReferralCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !iv.refPattern.MatchString(s) {
		return "", false
	}
	return strings.ToUpper(s), true
}

// LooksLikeReferralCode guards the display-name step against misordered
// wizard input.
func (iv *InputValidator) LooksLikeReferralCode(s string) bool {
	_, ok := iv.ReferralCode(s)
	return ok
}

package coupon

import (
	"errors"
	"regexp"
	"strings"
)

// Structural validation runs client-side before any server call; the
// server remains authoritative for whether a code actually applies.

const (
	minCodeLen = 3
	maxCodeLen = 20
)

var (
	ErrCodeEmpty    = errors.New("coupon: code is empty")
	ErrCodeTooShort = errors.New("coupon: code is too short")
	ErrCodeTooLong  = errors.New("coupon: code is too long")
	ErrCodeFormat   = errors.New("coupon: code has invalid characters")
)

var codePattern = regexp.MustCompile(`^[A-Z0-9\-_]+$`)

// Sanitize trims and uppercases a user-entered coupon code and checks
// its structure: 3-20 characters from [A-Z0-9-_].
func Sanitize(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case code == "":
		return "", ErrCodeEmpty
	case len(code) < minCodeLen:
		return "", ErrCodeTooShort
	case len(code) > maxCodeLen:
		return "", ErrCodeTooLong
	case !codePattern.MatchString(code):
		return "", ErrCodeFormat
	}
	return code, nil
}

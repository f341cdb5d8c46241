// Package validation holds the small pure checks shared by the usecases.
package validation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"unicode/utf8"
)

var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidLength reports whether s is between min and max characters long.
// Length is counted in runes, not bytes.
func ValidLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// NumericCode returns a random string of n decimal digits.
func NumericCode(n int) (string, error) {
	const digits = "0123456789"

	code := make([]byte, n)
	for i := range code {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		code[i] = digits[idx.Int64()]
	}
	return string(code), nil
}

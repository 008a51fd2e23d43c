// Package phone performs minimal shape checks on phone numbers.
// Full E.164 validation is deliberately not attempted; the verification
// provider is the authority on whether a number is reachable.
package phone

import "strings"

const (
	minDigits = 8
	maxDigits = 15
)

// Valid reports whether s looks like an internationally-prefixed phone
// number: a leading '+' followed by 8–15 digits. Spaces and hyphens are
// tolerated and ignored.
func Valid(s string) bool {
	s = Normalize(s)
	if len(s) < 2 || s[0] != '+' {
		return false
	}
	digits := s[1:]
	if len(digits) < minDigits || len(digits) > maxDigits {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// Normalize strips spaces and hyphens so "+234 800-000-0000" and
// "+2348000000000" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

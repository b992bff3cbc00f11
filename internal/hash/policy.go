package hash

import "unicode"

const minPasswordLength = 8

// ValidPassword reports whether a password meets the strength policy:
// at least 8 characters with an upper-case letter, a lower-case letter,
// a digit and a punctuation/symbol character.
func ValidPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

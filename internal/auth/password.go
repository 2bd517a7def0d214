package auth

import (
	"regexp"
	"unicode"
)

// MinPasswordLength is the canonical minimum applied at every call site.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidatePassword checks a candidate plaintext against the password
// policy: at least MinPasswordLength characters with one uppercase letter,
// one lowercase letter, and one digit. It returns false with a
// human-readable reason on rejection. Pure: no I/O, same input always
// yields the same result.
func ValidatePassword(password string) (bool, string) {
	if len(password) < MinPasswordLength {
		return false, "Password must be at least 8 characters long and include uppercase, lowercase, and a number"
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return false, "Password must be at least 8 characters long and include uppercase, lowercase, and a number"
	}
	return true, ""
}

// ValidEmail reports whether value has the shape of an email address.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

package auth

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Registration validation messages. They are returned to the caller verbatim.
const (
	MsgEmailEmpty              = "Email can't be empty"
	MsgPasswordEmpty           = "Password Or ConfirmPasswor Can't be empty"
	MsgConfirmPasswordMismatch = "Invalid confirm password"
	MsgInvalidEmail            = "Not a valid email"
	MsgInvalidPassword         = "Not a valid password"
)

const (
	minPasswordLength   = 8
	passwordSpecialSet  = "!*@#$%^&+="
	emailLocalCharClass = "[a-z0-9!#$%&'*+/=?^_`{|}~-]"
)

// emailPattern is the RFC 5322 "lite" form: dot-separated atoms, '@', then
// dot-separated LDH labels. Matching is case-insensitive and anchored.
var emailPattern = regexp.MustCompile(`(?i)^` +
	emailLocalCharClass + `+(?:\.` + emailLocalCharClass + `+)*` +
	`@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// ValidateRegistration checks registration input in a fixed order and returns
// the message for the first failing rule, or "" when the input is acceptable.
func ValidateRegistration(email, password, confirmPassword string) string {
	if email == "" {
		return MsgEmailEmpty
	}
	if password == "" || confirmPassword == "" {
		return MsgPasswordEmpty
	}
	if password != confirmPassword {
		return MsgConfirmPasswordMismatch
	}
	if !emailPattern.MatchString(email) {
		return MsgInvalidEmail
	}
	if !IsStrongPassword(password) {
		return MsgInvalidPassword
	}
	return ""
}

// IsStrongPassword reports whether password has at least 8 characters, a
// digit, a lowercase and an uppercase ASCII letter, and one of !*@#$%^&+=.
func IsStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}

	var digit, lower, upper, special bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecialSet, r):
			special = true
		}
	}
	return digit && lower && upper && special
}

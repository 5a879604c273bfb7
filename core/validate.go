package core

import (
	"net/mail"
	"regexp"
)

// namePattern: a letter followed by at least two letters, digits, '-', '_',
// '.' or spaces. Anchored on both ends so the first character really must be
// a letter.
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-_. ]{2,}$`)

// ValidEmail reports whether s is a well-formed address on its own: no
// display name, no angle brackets, nothing but the address.
func ValidEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// ValidName reports whether s is an acceptable display name: at least three
// characters, starting with a letter.
func ValidName(s string) bool {
	return namePattern.MatchString(s)
}

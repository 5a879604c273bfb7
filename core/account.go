package core

import (
	"strings"
	"time"
)

// Account is a registered identity together with its credential material.
//
// Email and name are globally unique and non-empty once the account exists.
// PasswordHash is always derived from this account's own PasswordSalt, and
// SessionKey is never derived from either.
type Account struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Biography string `json:"biography,omitempty"`
	ImageName string `json:"imageName,omitempty"`

	PasswordHash []byte `json:"-"` // Never expose in JSON
	PasswordSalt []byte `json:"-"` // Never expose in JSON
	SessionKey   string `json:"-"` // Only leaves through PublicSession

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicSession is the only projection of an Account allowed past the trust
// boundary, e.g. into a client-held cookie. It must never grow credential
// fields.
type PublicSession struct {
	ID         string `json:"id"`
	SessionKey string `json:"sessionKey"`
}

// HasImage reports whether the account carries display-image metadata.
func (a *Account) HasImage() bool {
	return a.ImageName != ""
}

// DefaultName derives a display name from the email local-part. Stores apply
// it when an account is created without an explicit name.
func DefaultName(email string) string {
	if at := strings.IndexByte(email, '@'); at >= 0 {
		return email[:at]
	}
	return email
}

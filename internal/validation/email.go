package validation

import (
	"errors"
	"net/mail"
)

var (
	errEmailRequired = errors.New("email address is required")
	errEmailTooLong  = errors.New("email address is too long (max 254 characters)")
	errEmailFormat   = errors.New("invalid email address format")
)

// ValidateEmail checks an address returned by an OAuth provider before it
// becomes a user key.
func ValidateEmail(email string) error {
	if email == "" {
		return errEmailRequired
	}
	// RFC 5321 caps the path at 254 octets.
	if len(email) > 254 {
		return errEmailTooLong
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return errEmailFormat
	}
	return nil
}

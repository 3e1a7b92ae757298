package model

import (
	"time"
)

const (
	ProviderGoogle = "google"
)

// User is a signed-in identity. Prayer records are not partitioned by user.
type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Provider  string    `db:"provider"`
	CreatedAt time.Time `db:"created_at"`
}

// DisplayName falls back to the email when the provider gave no name.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

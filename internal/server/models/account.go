// Package models holds the server-side records persisted by the repositories.
package models

import "time"

// Account is the identity record. The refresh token fields are nil until the
// first successful login and are overwritten on every login or renewal, so at
// most one refresh token per account is ever valid.
type Account struct {
	ID                    string
	Email                 string
	FirstName             string
	LastName              string
	PasswordHash          string
	RefreshToken          *string
	RefreshTokenExpiresAt *time.Time
	CreatedAt             time.Time
}

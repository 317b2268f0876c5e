// Package models holds client-side records kept in the local store.
package models

import "time"

// Session is the token pair of the last successful login or renewal. The
// client keeps exactly one.
type Session struct {
	Email        string
	AccessToken  string
	RefreshToken string
	UpdatedAt    time.Time
}

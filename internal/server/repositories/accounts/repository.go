// Package accounts declares the account store contract and its PostgreSQL
// implementation.
package accounts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/server/models"
)

// Repository persists accounts together with their single refresh token.
//
// The lookup methods used on the login and renewal paths lock the returned
// row until the surrounding transaction ends, so callers must run them inside
// dbx.WithTx when they intend to write the refresh token afterwards.
type Repository interface {
	// Create inserts a new account. A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByEmail returns common.ErrorNotFound when no account has this email.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByEmailAndRefreshToken matches email and the stored refresh token,
	// and only if the token expires strictly after now.
	GetByEmailAndRefreshToken(ctx context.Context, email, token string, now time.Time) (*models.Account, error)

	// UpdateRefreshToken replaces the stored refresh token and its expiry.
	UpdateRefreshToken(ctx context.Context, id, token string, expiresAt time.Time) error
}

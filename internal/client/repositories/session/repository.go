// Package session persists the CLI's current token pair.
package session

import (
	"context"

	"github.com/dmitrijs2005/userboarding/internal/client/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when nobody is logged in.
	Get(ctx context.Context) (*models.Session, error)
	// Save replaces the stored session.
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}

// Package roles stores the role names granted to accounts.
package roles

import (
	"context"

	"github.com/dmitrijs2005/userboarding/internal/server/models"
)

type Repository interface {
	// Create grants role.Name to role.AccountID and fills role.ID.
	Create(ctx context.Context, role *models.Role) (*models.Role, error)
	// ListByAccount returns the account's roles ordered by id; an account
	// without roles yields an empty slice.
	ListByAccount(ctx context.Context, accountID string) ([]models.Role, error)
}

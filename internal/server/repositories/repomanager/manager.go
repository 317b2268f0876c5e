package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userboarding/internal/dbx"
	"github.com/dmitrijs2005/userboarding/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/userboarding/internal/server/repositories/roles"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same code
// path works against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Roles(db dbx.DBTX) roles.Repository
}

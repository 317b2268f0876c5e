package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/common"
	"github.com/dmitrijs2005/userboarding/internal/dbx"
	"github.com/dmitrijs2005/userboarding/internal/server/models"
	"github.com/google/uuid"
)

const accountColumns = `id, email, first_name, last_name, password_hash,
		 refresh_token, refresh_token_expires_at, created_at`

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create assigns a new UUID when account.ID is empty.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO accounts (id, email, first_name, last_name, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Email, account.FirstName, account.LastName, account.PasswordHash).
		Scan(&account.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT ` + accountColumns + `
		 FROM accounts
		 WHERE email = $1
		 FOR UPDATE
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByEmailAndRefreshToken(ctx context.Context, email, token string, now time.Time) (*models.Account, error) {
	query :=
		`SELECT ` + accountColumns + `
		 FROM accounts
		 WHERE email = $1 AND refresh_token = $2 AND refresh_token_expires_at > $3
		 FOR UPDATE
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, email, token, now))
}

func (r *PostgresRepository) UpdateRefreshToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	query :=
		`UPDATE accounts
		 SET refresh_token = $2, refresh_token_expires_at = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, token, expiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	var (
		a         models.Account
		token     sql.NullString
		expiresAt sql.NullTime
	)

	err := row.Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash,
		&token, &expiresAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if token.Valid {
		a.RefreshToken = &token.String
	}
	if expiresAt.Valid {
		a.RefreshTokenExpiresAt = &expiresAt.Time
	}
	return &a, nil
}

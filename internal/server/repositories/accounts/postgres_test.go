package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userboarding/internal/common"
	"github.com/dmitrijs2005/userboarding/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "email", "first_name", "last_name", "password_hash",
	"refresh_token", "refresh_token_expires_at", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+accounts\s*\(id,\s*email,\s*first_name,\s*last_name,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(insertQ).
		WithArgs(sqlmock.AnyArg(), "a@b.com", "Ann", "Bee", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), &models.Account{
		Email: "a@b.com", FirstName: "Ann", LastName: "Bee", PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Len(t, got.ID, 36)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_KeepsGivenID(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WithArgs("fixed-id", "a@b.com", "", "", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	got, err := repo.Create(context.Background(), &models.Account{ID: "fixed-id", Email: "a@b.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", got.ID)
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	_, err := repo.Create(context.Background(), &models.Account{Email: "a@b.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Account{Email: "a@b.com", PasswordHash: "hash"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^SELECT\s+id,.*FROM\s+accounts\s+WHERE\s+email\s*=\s*\$1\s+FOR\s+UPDATE\s*$`
	exp := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("id-1", "a@b.com", "Ann", "Bee", "hash", "rt", exp, time.Now()))

	got, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, "rt", *got.RefreshToken)
	require.NotNil(t, got.RefreshTokenExpiresAt)
	assert.Equal(t, exp, *got.RefreshTokenExpiresAt)
}

func TestGetByEmail_NullRefreshToken(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+accounts\s+WHERE\s+email`).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("id-1", "a@b.com", "Ann", "Bee", "hash", nil, nil, time.Now()))

	got, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, got.RefreshToken)
	assert.Nil(t, got.RefreshTokenExpiresAt)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+accounts\s+WHERE\s+email`).
		WithArgs("ghost@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@b.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmailAndRefreshToken(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)WHERE\s+email\s*=\s*\$1\s+AND\s+refresh_token\s*=\s*\$2\s+AND\s+refresh_token_expires_at\s*>\s*\$3\s+FOR\s+UPDATE`
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q).
		WithArgs("a@b.com", "rt", now).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("id-1", "a@b.com", "Ann", "Bee", "hash", "rt", now.Add(time.Hour), now))

	got, err := repo.GetByEmailAndRefreshToken(context.Background(), "a@b.com", "rt", now)
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)

	mock.ExpectQuery(q).
		WithArgs("a@b.com", "stale", now).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByEmailAndRefreshToken(context.Background(), "a@b.com", "stale", now)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateRefreshToken(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+accounts\s+SET\s+refresh_token\s*=\s*\$2,\s*refresh_token_expires_at\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1\s*$`
	exp := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(q).
		WithArgs("id-1", "rt", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateRefreshToken(context.Background(), "id-1", "rt", exp))

	mock.ExpectExec(q).
		WithArgs("missing", "rt", exp).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateRefreshToken(context.Background(), "missing", "rt", exp), common.ErrorNotFound)

	mock.ExpectExec(q).
		WithArgs("id-1", "rt", exp).
		WillReturnError(errors.New("boom"))
	err := repo.UpdateRefreshToken(context.Background(), "id-1", "rt", exp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

package roles

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userboarding/internal/common"
	"github.com/dmitrijs2005/userboarding/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+account_roles\s*\(account_id,\s*name\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id\s*$`
	listQ   = `(?s)^SELECT\s+id,\s*account_id,\s*name\s+FROM\s+account_roles\s+WHERE\s+account_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WithArgs("acc-1", "admin").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	got, err := repo.Create(context.Background(), &models.Role{AccountID: "acc-1", Name: "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}

func TestCreate_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(&pgconn.PgError{Code: "23505"})
	_, err := repo.Create(context.Background(), &models.Role{AccountID: "acc-1", Name: "admin"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("fk violation"))
	_, err = repo.Create(context.Background(), &models.Role{AccountID: "acc-1", Name: "admin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: fk violation")
}

func TestListByAccount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).
		WithArgs("acc-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "name"}).
			AddRow(int64(1), "acc-1", "admin").
			AddRow(int64(2), "acc-1", "auditor"))

	got, err := repo.ListByAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, []models.Role{
		{ID: 1, AccountID: "acc-1", Name: "admin"},
		{ID: 2, AccountID: "acc-1", Name: "auditor"},
	}, got)
}

func TestListByAccount_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).
		WithArgs("acc-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "name"}))

	got, err := repo.ListByAccount(context.Background(), "acc-2")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByAccount_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WillReturnError(sql.ErrConnDone)
	_, err := repo.ListByAccount(context.Background(), "acc-1")
	assert.ErrorIs(t, err, sql.ErrConnDone)

	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "name"}).
			AddRow(int64(1), "acc-1", "admin").
			RowError(0, errors.New("row broke")))
	_, err = repo.ListByAccount(context.Background(), "acc-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row broke")
}

package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/common"
	"github.com/dmitrijs2005/userboarding/internal/dbx"
	"github.com/dmitrijs2005/userboarding/internal/server/models"
	"github.com/dmitrijs2005/userboarding/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/userboarding/internal/server/repositories/roles"
	"github.com/google/uuid"
)

// memStore is an in-memory account store. Transactions are driven by sqlmock,
// so writes here are not rolled back.
//
// With lockRows set, a successful refresh-token lookup holds row until the
// following UpdateRefreshToken writes, standing in for FOR UPDATE.
type memStore struct {
	mu       sync.Mutex
	row      sync.Mutex
	lockRows bool
	accounts map[string]*models.Account
	roles    []models.Role

	getErr        error
	createRoleErr error
}

func newMemStore() *memStore {
	return &memStore{accounts: map[string]*models.Account{}}
}

func (s *memStore) byEmail(email string) *models.Account {
	for _, a := range s.accounts {
		if a.Email == email {
			return a
		}
	}
	return nil
}

type memAccounts struct{ s *memStore }

func (r memAccounts) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.byEmail(a.Email) != nil {
		return nil, common.ErrorAlreadyExists
	}
	a.ID = uuid.NewString()
	cp := *a
	r.s.accounts[a.ID] = &cp
	return a, nil
}

func (r memAccounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.getErr != nil {
		return nil, r.s.getErr
	}
	a := r.s.byEmail(email)
	if a == nil {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAccounts) GetByEmailAndRefreshToken(_ context.Context, email, token string, now time.Time) (*models.Account, error) {
	if r.s.lockRows {
		r.s.row.Lock()
	}
	a, err := r.findByRefreshToken(email, token, now)
	if err != nil && r.s.lockRows {
		r.s.row.Unlock()
	}
	return a, err
}

func (r memAccounts) findByRefreshToken(email, token string, now time.Time) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.getErr != nil {
		return nil, r.s.getErr
	}
	a := r.s.byEmail(email)
	if a == nil || a.RefreshToken == nil || *a.RefreshToken != token ||
		a.RefreshTokenExpiresAt == nil || !a.RefreshTokenExpiresAt.After(now) {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAccounts) UpdateRefreshToken(_ context.Context, id, token string, expiresAt time.Time) error {
	if r.s.lockRows {
		defer r.s.row.Unlock()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.RefreshToken = &token
	a.RefreshTokenExpiresAt = &expiresAt
	return nil
}

type memRoles struct{ s *memStore }

func (r memRoles) Create(_ context.Context, role *models.Role) (*models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createRoleErr != nil {
		return nil, r.s.createRoleErr
	}
	role.ID = int64(len(r.s.roles) + 1)
	r.s.roles = append(r.s.roles, *role)
	return role, nil
}

func (r memRoles) ListByAccount(_ context.Context, accountID string) ([]models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Role{}
	for _, role := range r.s.roles {
		if role.AccountID == accountID {
			out = append(out, role)
		}
	}
	return out, nil
}

type memManager struct{ s *memStore }

func (m memManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m memManager) Accounts(dbx.DBTX) accounts.Repository        { return memAccounts(m) }
func (m memManager) Roles(dbx.DBTX) roles.Repository              { return memRoles(m) }

// stepClock advances by step on every reading so consecutive tokens differ.
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

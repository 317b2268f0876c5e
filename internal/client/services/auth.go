// Package services contains application services for the userboarding CLI.
// This file defines the authentication service: register, login, token
// renewal and housekeeping of the locally stored session.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/api"
	"github.com/dmitrijs2005/userboarding/internal/client/client"
	"github.com/dmitrijs2005/userboarding/internal/client/models"
	"github.com/dmitrijs2005/userboarding/internal/client/repositories/session"
	"github.com/dmitrijs2005/userboarding/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNotLoggedIn is returned by Renew and Session when no token pair is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// SessionInfo describes the stored token pair. Claims are read without
// signature verification since the client holds no signing key.
type SessionInfo struct {
	Email                string
	AccessToken          string
	RefreshToken         string
	AccessTokenExpiresAt time.Time
	Roles                []string
	UpdatedAt            time.Time
}

// Expired reports whether the access token is past its exp claim at now.
func (s *SessionInfo) Expired(now time.Time) bool {
	return !s.AccessTokenExpiresAt.IsZero() && !now.Before(s.AccessTokenExpiresAt)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create an account on the server, returning its message.
//   - Login: exchange credentials for tokens and store them locally.
//   - Renew: rotate the stored token pair.
//   - Session: describe the stored token pair.
//   - Logout: wipe the stored token pair.
//
// Server outcomes such as "Invalid Credentials" come back as the message
// with a nil error; an error means the call itself failed.
type AuthService interface {
	Register(ctx context.Context, req *api.RegisterRequest) (string, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	Renew(ctx context.Context) (string, error)
	Session(ctx context.Context) (*SessionInfo, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db, now: time.Now}
}

func (a *authService) getSessionRepo() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

func (a *authService) Register(ctx context.Context, req *api.RegisterRequest) (string, error) {
	msg, err := a.client.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("register error: %w", err)
	}
	return msg, nil
}

// Login replaces the stored session when the server issues tokens.
func (a *authService) Login(ctx context.Context, email string, password []byte) (string, error) {
	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}
	if err := a.saveSession(ctx, email, resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Renew rotates the stored pair. A rejected pair is left in place so the
// caller can show the server's message and ask for a fresh login.
func (a *authService) Renew(ctx context.Context) (string, error) {
	s, err := a.getSessionRepo().Get(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}

	resp, err := a.client.RenewAccessToken(ctx, s.AccessToken, s.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("renew error: %w", err)
	}
	if err := a.saveSession(ctx, s.Email, resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (a *authService) saveSession(ctx context.Context, email string, resp *api.TokenResponse) error {
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return nil
	}
	err := a.getSessionRepo().Save(ctx, &models.Session{
		Email:        email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UpdatedAt:    a.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

type accessClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

func (a *authService) Session(ctx context.Context) (*SessionInfo, error) {
	s, err := a.getSessionRepo().Get(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}

	info := &SessionInfo{
		Email:        s.Email,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		UpdatedAt:    s.UpdatedAt,
	}

	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, &claims); err == nil {
		if claims.ExpiresAt != nil {
			info.AccessTokenExpiresAt = claims.ExpiresAt.Time
		}
		info.Roles = claims.Roles
	}
	return info, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.getSessionRepo().Clear(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

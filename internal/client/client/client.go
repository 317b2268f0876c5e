package client

import (
	"context"

	"github.com/dmitrijs2005/userboarding/internal/api"
)

// Client talks to the auth server. Business outcomes ("Invalid Token" and
// the like) come back as messages; errors are transport or server faults.
type Client interface {
	Close() error
	Register(ctx context.Context, req *api.RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	RenewAccessToken(ctx context.Context, accessToken, refreshToken string) (*api.TokenResponse, error)
	Ping(ctx context.Context) error
}

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/api"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn    *grpc.ClientConn
	client  *api.AuthServiceClient
	timeout time.Duration
}

// NewGRPCClient prepares a lazy connection to endpointURL; nothing is dialed
// until the first call. Every call is bounded by timeout when it is positive.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn, client: api.NewAuthServiceClient(conn), timeout: timeout}, nil
}

func (c *GRPCClient) Register(ctx context.Context, req *api.RegisterRequest) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Register(ctx, req)
	if err != nil {
		return "", c.mapError(err)
	}
	return resp.Message, nil
}

func (c *GRPCClient) Login(ctx context.Context, email, password string) (*api.TokenResponse, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, c.mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) RenewAccessToken(ctx context.Context, accessToken, refreshToken string) (*api.TokenResponse, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.RenewAccessToken(ctx, &api.RenewRequest{AccessToken: accessToken, RefreshToken: refreshToken})
	if err != nil {
		return nil, c.mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return c.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Internal:
		return fmt.Errorf("%w: %s", ErrServer, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

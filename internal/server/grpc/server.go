// Package grpc exposes the auth service over gRPC using the JSON-coded
// contract from internal/api.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/api"
	"github.com/dmitrijs2005/userboarding/internal/common"
	"github.com/dmitrijs2005/userboarding/internal/logging"
	"github.com/dmitrijs2005/userboarding/internal/server/services"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AuthService is the subset of services.AuthService served here.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (string, error)
	Login(ctx context.Context, in services.LoginInput) (*services.TokenResponse, error)
	RenewAccessToken(ctx context.Context, in services.RenewInput) (*services.TokenResponse, error)
}

type GRPCServer struct {
	address        string
	auth           AuthService
	logger         logging.Logger
	requestTimeout time.Duration
}

func NewGRPCServer(address string, l logging.Logger, auth AuthService, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        address,
		logger:         l.With("module", "grpc_server"),
		auth:           auth,
		requestTimeout: requestTimeout,
	}
}

// newServer builds the grpc.Server with tracing, interceptors, the auth
// service and the standard health service registered.
func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.timeoutInterceptor),
	)
	api.RegisterAuthServiceServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(common.AuthServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv, hs
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv, hs := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}

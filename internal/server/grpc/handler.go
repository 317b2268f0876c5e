package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userboarding/internal/api"
	"github.com/dmitrijs2005/userboarding/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	msg, err := s.auth.Register(ctx, services.RegisterInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.RegisterResponse{Message: msg}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {
	resp, err := s.auth.Login(ctx, services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, toStatus(err)
	}
	return tokenResponse(resp), nil
}

func (s *GRPCServer) RenewAccessToken(ctx context.Context, req *api.RenewRequest) (*api.TokenResponse, error) {
	resp, err := s.auth.RenewAccessToken(ctx, services.RenewInput{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return tokenResponse(resp), nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func tokenResponse(r *services.TokenResponse) *api.TokenResponse {
	return &api.TokenResponse{
		Message:      r.Message,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
}

// toStatus hides infrastructure detail from callers; the cause is logged by
// the service and the interceptor.
func toStatus(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

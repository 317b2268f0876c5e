package api

import (
	"context"

	"github.com/dmitrijs2005/userboarding/internal/common"
	"google.golang.org/grpc"
)

// Full method names, as seen by interceptors.
const (
	FullMethodRegister         = "/" + common.AuthServiceName + "/Register"
	FullMethodLogin            = "/" + common.AuthServiceName + "/Login"
	FullMethodRenewAccessToken = "/" + common.AuthServiceName + "/RenewAccessToken"
	FullMethodPing             = "/" + common.AuthServiceName + "/Ping"
)

// AuthServiceServer is implemented by the gRPC server.
type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RenewAccessToken(context.Context, *RenewRequest) (*TokenResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// AuthServiceDesc describes the service for grpc.Server.RegisterService.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: common.AuthServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unaryHandler(FullMethodRegister, AuthServiceServer.Register),
		},
		{
			MethodName: "Login",
			Handler:    unaryHandler(FullMethodLogin, AuthServiceServer.Login),
		},
		{
			MethodName: "RenewAccessToken",
			Handler:    unaryHandler(FullMethodRenewAccessToken, AuthServiceServer.RenewAccessToken),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(FullMethodPing, AuthServiceServer.Ping),
		},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthServiceClient calls the auth service over a client connection, always
// with the JSON codec.
type AuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func (c *AuthServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	if err := c.cc.Invoke(ctx, FullMethodRegister, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(TokenResponse)
	if err := c.cc.Invoke(ctx, FullMethodLogin, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) RenewAccessToken(ctx context.Context, in *RenewRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(TokenResponse)
	if err := c.cc.Invoke(ctx, FullMethodRenewAccessToken, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, FullMethodPing, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

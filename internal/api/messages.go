// Package api declares the wire contract of the userboarding auth service:
// request and response messages, the JSON codec they travel with, and the
// gRPC service descriptor shared by server and client.
package api

type RegisterRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RenewRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by Login and RenewAccessToken. The tokens are
// empty unless Message reports success.
type TokenResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

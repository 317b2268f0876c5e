// Package common contains shared constants and sentinel errors used across
// userboarding components.
package common

// AuthServiceName is the fully qualified gRPC service name served by the
// auth server and dialed by the client.
const AuthServiceName = "userboarding.v1.AuthService"

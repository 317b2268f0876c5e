// Package auth holds the credential primitives used by the auth service:
// registration input validation, PBKDF2 password hashing, HS256 access token
// issuance and verification, and opaque refresh token generation.
//
// Everything here is free of storage concerns; persistence and the
// single-refresh-token-per-account rule live in the services package.
package auth

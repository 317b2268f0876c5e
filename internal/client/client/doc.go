// Package client contains the CLI's building blocks for talking to the
// userboarding auth server and for its local session store.
//
// GRPCClient implements Client over gRPC with the JSON codec from
// internal/api and maps status codes to ErrUnavailable and ErrServer.
// InitDatabase opens the SQLite file that keeps the current token pair and
// applies the embedded goose migrations.
package client

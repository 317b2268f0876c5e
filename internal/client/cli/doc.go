// Package cli provides the interactive userboarding command-line client.
//
// It wires configuration, the local session store, the auth service and an
// interactive REPL. A background watcher pings the server and shows whether
// it is reachable in the prompt.
//
// Commands:
//   - register: create an account
//   - login: obtain and store a token pair
//   - renew: rotate the stored token pair
//   - tokens: show the stored tokens and access token expiry
//   - logout: forget the stored token pair
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

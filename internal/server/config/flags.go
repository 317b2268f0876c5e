package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/userboarding/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret key
//	-i string     token issuer
//	-u string     token audience
//	-t duration   access token validity (e.g., "30s")
//	-r duration   refresh token validity (e.g., "168h")
//	-n int        PBKDF2 iteration count
//	-role string  default role granted at registration
//	-w duration   per-request timeout
//
// Flags not listed here are filtered out by flagx.ParseKnown, so -c/-config
// can share the command line.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenIssuer, "i", config.TokenIssuer, "token issuer")
	fs.StringVar(&config.TokenAudience, "u", config.TokenAudience, "token audience")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity")
	fs.DurationVar(&config.RefreshTokenValidityDuration, "r", config.RefreshTokenValidityDuration, "refresh token validity")
	fs.IntVar(&config.PasswordHashIterations, "n", config.PasswordHashIterations, "PBKDF2 iterations")
	fs.StringVar(&config.DefaultRole, "role", config.DefaultRole, "default role on registration")
	fs.DurationVar(&config.RequestTimeout, "w", config.RequestTimeout, "request timeout")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}
}

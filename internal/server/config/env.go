package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envFile is loaded into the process environment when present. Variables
// already set in the environment win over the file.
var envFile = ".env"

// EnvConfig mirrors Config for USERBOARDING_* environment variables. Unset
// variables leave the zero value, which keeps whatever JSON or the defaults set.
type EnvConfig struct {
	EndpointAddrGRPC             string        `env:"USERBOARDING_GRPC_ADDR"`
	DatabaseDSN                  string        `env:"USERBOARDING_DATABASE_DSN"`
	SecretKey                    string        `env:"USERBOARDING_SECRET_KEY"`
	TokenIssuer                  string        `env:"USERBOARDING_TOKEN_ISSUER"`
	TokenAudience                string        `env:"USERBOARDING_TOKEN_AUDIENCE"`
	AccessTokenValidityDuration  time.Duration `env:"USERBOARDING_ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"USERBOARDING_REFRESH_TOKEN_TTL"`
	PasswordHashIterations       int           `env:"USERBOARDING_PASSWORD_HASH_ITERATIONS"`
	DefaultRole                  string        `env:"USERBOARDING_DEFAULT_ROLE"`
	RequestTimeout               time.Duration `env:"USERBOARDING_REQUEST_TIMEOUT"`
	OtelEndpoint                 string        `env:"USERBOARDING_OTEL_ENDPOINT"`
}

// parseEnv overlays config with the environment. A malformed value panics,
// same as a broken JSON file.
func parseEnv(config *Config) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	}

	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, e.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.TokenIssuer, e.TokenIssuer)
	setString(&config.TokenAudience, e.TokenAudience)
	setString(&config.DefaultRole, e.DefaultRole)
	setString(&config.OtelEndpoint, e.OtelEndpoint)

	if e.AccessTokenValidityDuration != 0 {
		config.AccessTokenValidityDuration = e.AccessTokenValidityDuration
	}
	if e.RefreshTokenValidityDuration != 0 {
		config.RefreshTokenValidityDuration = e.RefreshTokenValidityDuration
	}
	if e.RequestTimeout != 0 {
		config.RequestTimeout = e.RequestTimeout
	}
	if e.PasswordHashIterations != 0 {
		config.PasswordHashIterations = e.PasswordHashIterations
	}
}

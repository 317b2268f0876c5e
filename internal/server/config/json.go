package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userboarding/internal/flagx"
	"github.com/dmitrijs2005/userboarding/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so both "30s" and integer nanoseconds are accepted.
//
// Pointer-free zero values mean "not set": only fields present with a
// non-zero value overwrite the defaults.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	TokenIssuer                  string         `json:"token_issuer"`
	TokenAudience                string         `json:"token_audience"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	PasswordHashIterations       int            `json:"password_hash_iterations"`
	DefaultRole                  string         `json:"default_role"`
	RequestTimeout               timex.Duration `json:"request_timeout"`
	OtelEndpoint                 string         `json:"otel_endpoint"`
}

// parseJson overlays config with the JSON file named by -c/-config.
// Without either flag nothing is loaded. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenIssuer, c.TokenIssuer)
	setString(&config.TokenAudience, c.TokenAudience)
	setString(&config.DefaultRole, c.DefaultRole)
	setString(&config.OtelEndpoint, c.OtelEndpoint)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.PasswordHashIterations != 0 {
		config.PasswordHashIterations = c.PasswordHashIterations
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

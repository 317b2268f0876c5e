package config

import "time"

// Config holds runtime settings for the userboarding CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the auth gRPC endpoint.
//   - RequestTimeout: deadline applied to each RPC.
//   - SessionDSN: SQLite DSN of the local session store.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	SessionDSN         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.SessionDSN = "file:userboarding.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

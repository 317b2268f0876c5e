package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userboarding/internal/flagx"
	"github.com/dmitrijs2005/userboarding/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "10s" or
// integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	SessionDSN         string         `json:"session_dsn"`
}

// parseJson overlays cfg with the file named by -c/-config. Missing keys keep
// their current values. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDSN != "" {
		cfg.SessionDSN = jc.SessionDSN
	}
}

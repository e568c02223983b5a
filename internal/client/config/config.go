// Package config loads runtime settings for the EcoSync client.
package config

import "time"

// Config holds runtime settings for the EcoSync CLI.
//
// Fields:
//   - APIBaseURL: base URL of the EcoSync REST API.
//   - RequestTimeout: per-request timeout for gateway calls.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - StateDBPath: path of the local sqlite database holding cached state.
//   - FrontCameraSource / RearCameraSource: snapshot paths backing the
//     capture device; an empty path means that camera is unavailable.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	StateDBPath         string
	FrontCameraSource   string
	RearCameraSource    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.StateDBPath = "ecosync.db"
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

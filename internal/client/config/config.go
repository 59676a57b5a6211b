package config

import "time"

// Config holds runtime settings for the healthdesk CLI.
//
// Fields:
//   - APIBaseURL: base URL of the remote API, including the /api prefix.
//   - RequestTimeout: per-request timeout of the underlying HTTP client.
//   - StorePath: path of the local SQLite file holding the session record.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StorePath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 10 * time.Second
	c.StorePath = "healthdesk.db"
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

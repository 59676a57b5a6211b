package config

import (
	"encoding/json"
	"os"
	"time"

	"healthdesk/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// given in whole seconds.
type JsonConfig struct {
	APIBaseURL     string `json:"api_base_url"`
	RequestTimeout int    `json:"request_timeout"`
	StorePath      string `json:"store_path"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flags. Absent file path means no JSON is loaded. Zero-value
// fields in the file leave the current Config values untouched. Panics on
// read or unmarshal errors (caller should recover if desired).
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout) * time.Second
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":    "http://www.example:9000/api",
		"request_timeout": 15,
		"store_path":      "custom.db",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "http://www.example:9000/api", cfg.APIBaseURL)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "custom.db", cfg.StorePath)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			APIBaseURL:     "http://defaults:1234/api",
			RequestTimeout: 42 * time.Second,
			StorePath:      "defaults.db",
		}
		parseJson(cfg)

		assert.Equal(t, "http://defaults:1234/api", cfg.APIBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "defaults.db", cfg.StorePath)
	})

	t.Run("partial file keeps remaining values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"api_base_url": "http://partial:8000/api",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{RequestTimeout: 7 * time.Second, StorePath: "keep.db"}
		parseJson(cfg)

		assert.Equal(t, "http://partial:8000/api", cfg.APIBaseURL)
		assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "keep.db", cfg.StorePath)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

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
		"endpoint_addr":             "www.example:9000",
		"database_dsn":              "auth.db",
		"base_url":                  "https://app.example.com",
		"email_from":                "auth@example.com",
		"resend_api_key":            "re_key",
		"session_secret":            "my_secret_key",
		"session_validity_duration": "1h",
		"otp_validity_duration":     "10m",
		"dev_mode":                  false,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
		assert.Equal(t, "auth.db", cfg.DatabaseDSN)
		assert.Equal(t, "https://app.example.com", cfg.BaseURL)
		assert.Equal(t, "auth@example.com", cfg.EmailFrom)
		assert.Equal(t, "re_key", cfg.ResendAPIKey)
		assert.Equal(t, "my_secret_key", cfg.SessionSecret)
		assert.Equal(t, 1*time.Hour, cfg.SessionValidityDuration)
		assert.Equal(t, 10*time.Minute, cfg.OTPValidityDuration)
		assert.False(t, cfg.DevMode)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddr:            "defaults:1234",
			DatabaseDSN:             "auth.db",
			BaseURL:                 "http://base",
			EmailFrom:               "from@host",
			SessionSecret:           "key",
			SessionValidityDuration: 2 * time.Minute,
			OTPValidityDuration:     3 * time.Minute,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddr)
		assert.Equal(t, "auth.db", cfg.DatabaseDSN)
		assert.Equal(t, "http://base", cfg.BaseURL)
		assert.Equal(t, "from@host", cfg.EmailFrom)
		assert.Equal(t, "key", cfg.SessionSecret)
		assert.Equal(t, 2*time.Minute, cfg.SessionValidityDuration)
		assert.Equal(t, 3*time.Minute, cfg.OTPValidityDuration)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

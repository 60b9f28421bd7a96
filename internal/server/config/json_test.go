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
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()

	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"http_addr":                      "www.example:9000",
		"database_dsn":                   "postgres://db/todoweb",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "12h",
		"password_hash_cost":             4,
		"allowed_origins":                []string{"https://app.example"},
		"log_level":                      "warn",
		"shutdown_timeout":               "3s",
		"s3_root_user":                   "user",
		"s3_root_password":               "password",
		"s3_bucket":                      "bucket",
		"s3_region":                      "region",
		"s3_base_endpoint":               "base_endpoint",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", full})

		assert.Equal(t, "www.example:9000", cfg.HTTPAddr)
		assert.Equal(t, "postgres://db/todoweb", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 12*time.Hour, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 4, cfg.PasswordHashCost)
		assert.Equal(t, []string{"https://app.example"}, cfg.AllowedOrigins)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"secret_key": "k2"})
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-c", partial})

		assert.Equal(t, "k2", cfg.SecretKey)
		assert.Equal(t, ":8000", cfg.HTTPAddr)
		assert.Equal(t, 24*time.Hour, cfg.AccessTokenValidityDuration)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{HTTPAddr: "defaults:1234", SecretKey: "key"}
		parseJson(cfg, nil)

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Panics(t, func() { parseJson(&Config{}, []string{"-config", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-config", filepath.Join(dir, "nope.json")}) })
	})
}

// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Mode selects how missing mandatory settings are treated.
type Mode int

const (
	// Production refuses to start without a signing secret.
	Production Mode = iota
	// Test substitutes TestSecretKey for a missing secret.
	Test
	// Tool leaves a missing secret empty; for commands that never sign
	// tokens, such as the asset uploader.
	Tool
)

// TestSecretKey signs tokens in Test mode when no secret is configured.
const TestSecretKey = "test-secret-key"

// ErrMissingSecretKey is returned by LoadConfig in Production mode when no
// signing secret was supplied by any source.
var ErrMissingSecretKey = errors.New("secret key is required: set SECRET_KEY, -s or secret_key")

// Config holds runtime settings for the TodoWeb server.
//
// Fields:
//   - HTTPAddr: bind address for the HTTP API.
//   - DatabaseDSN: postgres://... (pgx) or sqlite://<path> (modernc).
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - PasswordHashCost: bcrypt cost factor.
//   - AllowedOrigins: CORS origins allowed to call the API with credentials.
//   - LogLevel: debug, info, warn or error.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - S3RootUser / S3RootPassword: static credentials for the asset bucket;
//     empty means the default AWS credential chain.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	HTTPAddr                    string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	PasswordHashCost            int
	AllowedOrigins              []string
	LogLevel                    string
	ShutdownTimeout             time.Duration
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
}

// LoadDefaults populates Config with development defaults. SecretKey is
// deliberately left empty.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.DatabaseDSN = "sqlite://todoweb.db"
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.PasswordHashCost = bcrypt.DefaultCost
	c.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags. In Production mode a missing secret is an error.
func LoadConfig(mode Mode) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := os.Args[1:]
	parseJson(cfg, args)
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, args)

	if err := cfg.resolveSecret(mode); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) resolveSecret(mode Mode) error {
	if c.SecretKey != "" {
		return nil
	}
	switch mode {
	case Test:
		c.SecretKey = TestSecretKey
		return nil
	case Tool:
		return nil
	default:
		return ErrMissingSecretKey
	}
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todoweb/internal/flagx"
	"github.com/dmitrijs2005/todoweb/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept both "24h" style strings and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                    string         `json:"http_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	PasswordHashCost            int            `json:"password_hash_cost"`
	AllowedOrigins              []string       `json:"allowed_origins"`
	LogLevel                    string         `json:"log_level"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c/-config (if any) and copies every
// field that is set in it onto config. A missing flag is a no-op; an
// unreadable or invalid file panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&config.HTTPAddr, c.HTTPAddr)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.LogLevel, c.LogLevel)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.PasswordHashCost > 0 {
		config.PasswordHashCost = c.PasswordHashCost
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

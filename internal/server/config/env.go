package config

import "github.com/dmitrijs2005/todoweb/internal/flagx"

// parseEnv overlays settings from environment variables. lookup is
// os.LookupEnv in production; tests pass a map-backed function.
//
// Recognised variables:
//
//	HTTP_ADDR, DATABASE_URL, SECRET_KEY, ALLOWED_ORIGINS (comma-separated),
//	LOG_LEVEL, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_REGION,
//	S3_BUCKET_NAME, S3_ENDPOINT
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("HTTP_ADDR", &config.HTTPAddr)
	str("DATABASE_URL", &config.DatabaseDSN)
	str("SECRET_KEY", &config.SecretKey)
	str("LOG_LEVEL", &config.LogLevel)
	str("AWS_ACCESS_KEY_ID", &config.S3RootUser)
	str("AWS_SECRET_ACCESS_KEY", &config.S3RootPassword)
	str("AWS_REGION", &config.S3Region)
	str("S3_BUCKET_NAME", &config.S3Bucket)
	str("S3_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		if origins := flagx.SplitList(v); len(origins) > 0 {
			config.AllowedOrigins = origins
		}
	}
}

package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoweb/internal/flagx"
)

var flagNames = []string{"-a", "-d", "-s", "-t", "-o", "-l", "-u", "-p", "-b", "-g", "-e"}

// CommandArgs strips every configuration flag (including -c/-config) from
// args and returns what is left, e.g. a subcommand and its operands.
func CommandArgs(args []string) []string {
	return flagx.RemainingArgs(args, append([]string{"-c", "-config"}, flagNames...))
}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-o string   comma-separated CORS origins
//	-l string   log level
//	-u string   S3 access key id
//	-p string   S3 secret access key
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// parsers (-c) do not break parsing.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, flagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma-separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 access key id")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 secret access key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.AllowedOrigins = flagx.SplitList(*origins)
}

package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/yogastudio/internal/flagx"
)

// serverFlags lists every short flag parseFlags understands.
var serverFlags = []string{"-a", "-d", "-s", "-t", "-p", "-b", "-l", "-r", "-u", "-o", "-w"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-p string   API path prefix (e.g., "/api")
//	-b int      bcrypt cost
//	-l string   log level
//	-r float    auth requests per second per client
//	-u int      auth request burst per client
//	-o string   comma-separated CORS origins
//	-w int      shutdown timeout, seconds
//
// os.Args is filtered to the flags above first, so flags owned by other
// parsers (the -c config path, admin tool flags) are not rejected.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.APIPrefix, "p", config.APIPrefix, "API path prefix")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.Float64Var(&config.LoginRateLimit, "r", config.LoginRateLimit, "auth requests per second per client")
	fs.IntVar(&config.LoginRateBurst, "u", config.LoginRateBurst, "auth request burst per client")

	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "comma-separated CORS origins")
	shutdownTimeout := fs.Int("w", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.CORSAllowedOrigins = flagx.SplitList(*origins)
	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}

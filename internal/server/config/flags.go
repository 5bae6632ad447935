package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            HTTP bind address (e.g. ":8080")
//	-g string            gRPC health bind address (e.g. ":50051")
//	-d string            PostgreSQL DSN
//	-s string            JWT HMAC secret key
//	-t int               token validity, hours
//	-l string            log level (debug, info, warn, error)
//	-r string            Redis address, empty disables the quiz cache
//	-b string            S3 bucket for the quiz archive, empty disables it
//	-cron-secret string  shared secret of the generation trigger
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and other
// layers' flags do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-l", "-r", "-b", "-cron-secret"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port of the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 archive bucket")
	fs.StringVar(&config.CronSecret, "cron-secret", config.CronSecret, "generation trigger secret")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		}
	})
}

package config

import (
	"strconv"
	"time"
)

// parseEnv overlays values from environment variables. lookup is
// os.LookupEnv in production; tests pass a map-backed function.
//
// Recognised variables:
//
//	HTTP_ADDR, GRPC_ADDR, DATABASE_DSN, JWT_SECRET, TOKEN_VALIDITY,
//	CRON_SECRET, LOG_LEVEL, GEMINI_API_KEY, GEMINI_MODEL,
//	GENERATION_TIMEOUT, GENERATION_RETRIES, REDIS_ADDR, REDIS_PASSWORD,
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT,
//	AUTH_RATE_LIMIT
//
// Values that fail to parse are ignored and the previous value is kept.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("JWT_SECRET", &config.SecretKey)
	dur("TOKEN_VALIDITY", &config.TokenValidityDuration)
	str("CRON_SECRET", &config.CronSecret)
	str("LOG_LEVEL", &config.LogLevel)
	str("GEMINI_API_KEY", &config.GeminiAPIKey)
	str("GEMINI_MODEL", &config.GeminiModel)
	dur("GENERATION_TIMEOUT", &config.GenerationTimeout)
	str("REDIS_ADDR", &config.RedisAddr)
	str("REDIS_PASSWORD", &config.RedisPassword)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := lookup("GENERATION_RETRIES"); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.GenerationRetries = n
		}
	}
	if v, ok := lookup("AUTH_RATE_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.AuthRateLimit = n
		}
	}
}

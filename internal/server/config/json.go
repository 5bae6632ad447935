package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vocabday/internal/flagx"
	"github.com/dmitrijs2005/vocabday/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Pointer and
// zero-value fields that are absent from the file leave the current value
// untouched, so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string          `json:"endpoint_addr_grpc"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	CronSecret            string          `json:"cron_secret"`
	LogLevel              string          `json:"log_level"`
	GeminiAPIKey          string          `json:"gemini_api_key"`
	GeminiModel           string          `json:"gemini_model"`
	GenerationTimeout     *timex.Duration `json:"generation_timeout"`
	GenerationRetries     *uint64         `json:"generation_retries"`
	RedisAddr             string          `json:"redis_addr"`
	RedisPassword         string          `json:"redis_password"`
	QuizCacheTTL          *timex.Duration `json:"quiz_cache_ttl"`
	S3RootUser            string          `json:"s3_root_user"`
	S3RootPassword        string          `json:"s3_root_password"`
	S3Bucket              string          `json:"s3_bucket"`
	S3Region              string          `json:"s3_region"`
	S3BaseEndpoint        string          `json:"s3_base_endpoint"`
	AuthRateLimit         *int            `json:"auth_rate_limit"`
}

// parseJson loads the file named by -c/-config (if any) into config.
// It panics if the file cannot be read or is not valid JSON.
func parseJson(config *Config) {
	path := flagx.ConfigPath(os.Args[1:])
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CronSecret, c.CronSecret)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.GeminiAPIKey, c.GeminiAPIKey)
	setString(&config.GeminiModel, c.GeminiModel)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.GenerationTimeout != nil {
		config.GenerationTimeout = c.GenerationTimeout.Duration
	}
	if c.QuizCacheTTL != nil {
		config.QuizCacheTTL = c.QuizCacheTTL.Duration
	}
	if c.GenerationRetries != nil {
		config.GenerationRetries = *c.GenerationRetries
	}
	if c.AuthRateLimit != nil {
		config.AuthRateLimit = *c.AuthRateLimit
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

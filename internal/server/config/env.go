package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over the file.
//
// Recognized variables:
//
//	TOOLLY_ADDR           HTTP bind address
//	DATABASE_DSN          PostgreSQL DSN
//	JWT_SECRET            HMAC secret for token signing
//	ACCESS_TOKEN_TTL      session token lifetime (Go duration, e.g. "1h")
//	PENDING_TOKEN_TTL     2FA pending token lifetime
//	RATE_LIMIT_RPS        requests per second per client
//	RATE_LIMIT_BURST      burst size per client
//	CSRF_ENABLED          "true" to enable double-submit CSRF checks
//	ATTACHMENT_STORE      "db" or "s3"
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	// Missing .env is not an error; plain env vars still apply.
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("TOOLLY_ADDR"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("PENDING_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.PendingTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("RATE_LIMIT_RPS"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.RateLimitRPS = f
		}
	}
	if v, ok := os.LookupEnv("RATE_LIMIT_BURST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.RateLimitBurst = n
		}
	}
	if v, ok := os.LookupEnv("CSRF_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.CSRFEnabled = b
		}
	}
	if v, ok := os.LookupEnv("ATTACHMENT_STORE"); ok {
		config.AttachmentStore = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_PASSWORD"); ok {
		config.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
}

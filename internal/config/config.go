package config

import (
	"os"
	"time"
)

type Config struct {
	AppPort  string
	LogLevel string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string

	// VerifierPolicy selects how passwords are stored and checked:
	// plaintext, sha256, bcrypt, aesgcm or delegated.
	VerifierPolicy string

	// EncryptionKey is the base64-encoded 32-byte key for the aesgcm
	// policy. Load wipes it from the process environment.
	EncryptionKey string

	SessionTTL time.Duration
}

func Load() Config {

	cfg := Config{

		AppPort:  getenv("APP_PORT", "3000"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		VerifierPolicy: getenv("VERIFIER_POLICY", "bcrypt"),
		EncryptionKey:  os.Getenv("ENCRYPTION_KEY"),

		SessionTTL: getduration("SESSION_TTL", 24*time.Hour),
	}

	os.Setenv("ENCRYPTION_KEY", "")

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

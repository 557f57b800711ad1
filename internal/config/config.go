// Package config collects every environment-driven setting into one
// struct that gets injected at startup. There is no ambient lookup of
// the signing secret anywhere else in the codebase.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTokenTTL      = 7 * 24 * time.Hour
	DefaultMaxUploadSize = 50 << 20 // 50 MiB
)

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	JWTSecret string
	TokenTTL  time.Duration

	MaxUploadSize int64

	// AllowedOrigins is the comma-separated CLIENT_URLS value; empty
	// means every origin is allowed.
	AllowedOrigins string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
}

// Load reads the environment. It refuses to produce a Config without a
// signing secret so the server can never start issuing unsigned tokens.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	cfg := &Config{
		Port:           getenv("PORT", "5000"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "cloud_drop"),
		JWTSecret:      secret,
		TokenTTL:       DefaultTokenTTL,
		MaxUploadSize:  DefaultMaxUploadSize,
		AllowedOrigins: cleanOrigins(os.Getenv("CLIENT_URLS")),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}

	if v := os.Getenv("JWT_EXPIRE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, errors.New("JWT_EXPIRE must be a positive duration")
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv("UPLOAD_MAX_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, errors.New("UPLOAD_MAX_SIZE must be a positive byte count")
		}
		cfg.MaxUploadSize = n
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func cleanOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}

package config

import (
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	JWT    JWTConfig
	OAuth  OAuthConfig
	MinIO  MinIOConfig
	Worker WorkerConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	FrontendOrigin string // CORS origin and post-auth redirect target
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	SessionExpiry int // hours
}

// OAuthConfig carries the Google OAuth client credentials. BaseURL is
// the externally visible origin of this API, used to build the
// callback URL registered with Google.
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	BaseURL            string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// WorkerConfig tunes the background jobs.
type WorkerConfig struct {
	OrphanSweepSchedule string // cron spec
	OrphanGraceHours    int    // objects younger than this are never swept
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Nexload API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-me-in-production"),
			SessionExpiry: getEnvInt("JWT_SESSION_EXPIRY", 24*7), // a week
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8080"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "resources"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Worker: WorkerConfig{
			OrphanSweepSchedule: getEnv("ORPHAN_SWEEP_SCHEDULE", "@every 6h"),
			OrphanGraceHours:    getEnvInt("ORPHAN_GRACE_HOURS", 24),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

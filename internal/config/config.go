package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Admin credential (stateless, checked per request). Either the bcrypt
	// hash or the plain secret must be set; the hash wins when both are.
	AdminSecret     string
	AdminSecretHash string

	// JWT for minted admin bearer tokens
	JWTSecret     string
	AdminTokenTTL time.Duration

	// Reversible identity sealing (hex, 32 bytes). Empty disables reveal for
	// all rows written while unset.
	SealKey string

	// Evidence storage
	StorageDriver       string // "minio" or "local"
	MinioEndpoint       string
	MinioAccessKey      string
	MinioSecretKey      string
	MinioBucket         string
	MinioUseSSL         bool
	MinioPublicURL      string
	LocalStorageDir     string
	LocalStorageBaseURL string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "scamlens_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AdminSecret:     getEnv("ADMIN_SECRET", ""),
		AdminSecretHash: getEnv("ADMIN_SECRET_HASH", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminTokenTTL: parseDuration(getEnv("ADMIN_TOKEN_TTL", "1h")),

		SealKey: getEnv("SEAL_KEY", ""),

		StorageDriver:  getEnv("STORAGE_DRIVER", "local"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "proofs"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", ""),

		LocalStorageDir:     getEnv("LOCAL_STORAGE_DIR", "./uploads"),
		LocalStorageBaseURL: getEnv("LOCAL_STORAGE_BASE_URL", "/uploads"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// HasAdminCredential reports whether at least one admin credential form is
// configured. Without one, every moderation call fails closed.
func (c *Config) HasAdminCredential() bool {
	return c.AdminSecret != "" || c.AdminSecretHash != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Hour
	}
	return d
}

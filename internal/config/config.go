package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// StorageConfig holds S3-compatible object storage settings.
// All prescription files live in one shared bucket.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// LinkTTLSec is how long presigned download links stay valid.
	LinkTTLSec int
}

// AppConfig is the process-scoped configuration, constructed once at startup
// and passed explicitly to the components that need it.
type AppConfig struct {
	Port     string
	Database DatabaseConfig
	Storage  StorageConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the .env file.
func Load() *AppConfig {
	return &AppConfig{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Endpoint:   getEnv("STORAGE_ENDPOINT", ""),
			AccessKey:  getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:  getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:     getEnv("STORAGE_BUCKET", "storage-container"),
			UseSSL:     getEnvBool("STORAGE_USE_SSL", false),
			LinkTTLSec: getEnvInt("STORAGE_LINK_TTL_SEC", 3600),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

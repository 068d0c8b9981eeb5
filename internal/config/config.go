package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Storage backend selection: memory, redis or mongodb
	StorageBackend string `json:"storage_backend"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// MongoDB configuration
	MongoURI        string `json:"mongo_uri"`
	MongoDatabase   string `json:"mongo_database"`
	MongoCollection string `json:"mongo_kv_collection"`

	// Admin credentials (single pair, placeholder auth)
	AdminUsername string `json:"admin_username"`
	AdminPassword string `json:"-"`

	// Listing configuration
	PageSize int `json:"page_size"`

	// Photo upload configuration
	PhotoMaxBytes int64 `json:"photo_max_bytes"`

	// Phone normalization
	DefaultPhoneRegion string `json:"default_phone_region"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	pageSize, err := strconv.Atoi(getEnvOrDefault("PAGE_SIZE", "5"))
	if err != nil {
		return fmt.Errorf("invalid PAGE_SIZE: %w", err)
	}
	if pageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be at least 1")
	}

	photoMaxBytes, err := strconv.ParseInt(getEnvOrDefault("PHOTO_MAX_BYTES", strconv.Itoa(5<<20)), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid PHOTO_MAX_BYTES: %w", err)
	}

	backend := getEnvOrDefault("STORAGE_BACKEND", "redis")
	switch backend {
	case "memory", "redis", "mongodb":
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND %q: must be memory, redis or mongodb", backend)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		StorageBackend: backend,

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// MongoDB configuration
		MongoURI:        getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnvOrDefault("MONGODB_DATABASE", "quickreg"),
		MongoCollection: getEnvOrDefault("MONGODB_KV_COLLECTION", "kv_store"),

		// Admin credentials
		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", "admin123"),

		// Listing configuration
		PageSize: pageSize,

		// Photo upload configuration
		PhotoMaxBytes: photoMaxBytes,

		// Phone normalization
		DefaultPhoneRegion: getEnvOrDefault("DEFAULT_PHONE_REGION", "US"),

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
}

// LoadConfig creates a new Config instance with values from environment
// variables or secret files, depending on the environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadFromEnv(cfg)
	case Development, Test, Production:
		if err := loadFromSecrets(cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromEnv reads everything from plain environment variables (CI).
func loadFromEnv(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = 0
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
}

// loadFromSecrets reads Docker secrets, falling back to environment
// variables for anything not present as a secret file.
func loadFromSecrets(cfg *Config) error {
	read := func(secret, envVar string) string {
		if v := readSecret(secret); v != "" {
			return v
		}
		return os.Getenv(envVar)
	}

	cfg.ServerPort = read("server_port", "SERVER_PORT")
	cfg.ServerHost = read("server_host", "SERVER_HOST")
	cfg.DBHost = read("db_host", "DB_HOST")
	cfg.DBPort = read("db_port", "DB_PORT")
	cfg.DBUser = read("db_user", "DB_USER")
	cfg.DBPassword = read("db_password", "DB_PASSWORD")
	cfg.DBName = read("db_name", "DB_NAME")
	cfg.DBSSLMode = read("db_ssl_mode", "DB_SSL_MODE")
	cfg.RedisHost = read("redis_host", "REDIS_HOST")
	cfg.RedisPort = read("redis_port", "REDIS_PORT")
	cfg.RedisPassword = read("redis_password", "REDIS_PASSWORD")
	cfg.RedisURL = read("redis_url", "REDIS_URL")
	cfg.RedisDB = 0
	cfg.JWTSecret = read("jwt_secret", "JWT_SECRET")

	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

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

	// Logging
	LogLevel string

	// Recipe generation service. Generation is disabled when LLMAPIKey is empty.
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string
	LLMTimeout time.Duration

	// Matching tables. S3 wins over the local file when both are set.
	MatchingConfigPath  string
	MatchingConfigS3Key string
}

const (
	defaultLLMBaseURL = "https://api.deepseek.com/v1"
	defaultLLMModel   = "deepseek-chat"
	defaultLLMTimeout = 60 * time.Second
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		// A missing .env is fine; docker secrets and the environment still apply.
		_ = godotenv.Load()
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}
	loadCommon(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI from environment variables only
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.LLMAPIKey = os.Getenv("TEST_LLM_API_KEY")
}

// loadDevConfig reads docker secrets and falls back to environment variables
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = secretOrEnv("server_port")
	cfg.ServerHost = secretOrEnv("server_host")
	cfg.DBHost = secretOrEnv("db_host")
	cfg.DBPort = secretOrEnv("db_port")
	cfg.DBUser = secretOrEnv("db_user")
	cfg.DBPassword = secretOrEnv("db_password")
	cfg.DBName = secretOrEnv("db_name")
	cfg.DBSSLMode = secretOrEnv("db_ssl_mode")
	cfg.RedisHost = secretOrEnv("redis_host")
	cfg.RedisPort = secretOrEnv("redis_port")
	cfg.RedisPassword = secretOrEnv("redis_password")
	cfg.RedisURL = secretOrEnv("redis_url")
	cfg.JWTSecret = secretOrEnv("jwt_secret")
	cfg.LLMAPIKey = secretOrEnv("llm_api_key")
}

// loadProdConfig loads sensitive values from docker secrets only
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = secretOrEnv("server_port")
	cfg.ServerHost = secretOrEnv("server_host")
	cfg.DBHost = secretOrEnv("db_host")
	cfg.DBPort = secretOrEnv("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = secretOrEnv("db_name")
	cfg.DBSSLMode = secretOrEnv("db_ssl_mode")
	cfg.RedisHost = secretOrEnv("redis_host")
	cfg.RedisPort = secretOrEnv("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = readSecret("redis_url")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.LLMAPIKey = readSecret("llm_api_key")
}

// loadCommon fills settings that are not secret in any environment
func loadCommon(cfg *Config) {
	cfg.RedisDB = 0
	if db, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.RedisDB = db
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))

	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = readKeyFile(os.Getenv("LLM_API_KEY_FILE"))
	}
	cfg.LLMBaseURL = getEnv("LLM_API_URL", defaultLLMBaseURL)
	cfg.LLMModel = getEnv("LLM_MODEL", defaultLLMModel)
	cfg.LLMTimeout = defaultLLMTimeout
	if d, err := time.ParseDuration(os.Getenv("LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.LLMTimeout = d
	}

	cfg.MatchingConfigPath = getEnv("MATCHING_CONFIG_PATH", "configs/matching.yaml")
	cfg.MatchingConfigS3Key = os.Getenv("MATCHING_CONFIG_S3_KEY")
}

// DatabaseDSN builds the postgres connection string
func (c *Config) DatabaseDSN() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode,
	)
}

// LLMEnabled reports whether a recipe generation backend is configured
func (c *Config) LLMEnabled() bool {
	return c.LLMAPIKey != ""
}

// secretsDir returns the docker secrets directory
func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	if data, err := os.ReadFile(filepath.Join(secretsDir(), name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// secretOrEnv prefers the docker secret and falls back to the upper-cased env var
func secretOrEnv(name string) string {
	if v := readSecret(name); v != "" {
		return v
	}
	return os.Getenv(strings.ToUpper(name))
}

func readKeyFile(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

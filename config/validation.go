package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// field pairs a configuration name with its loaded value
type field struct {
	name  string
	value func(*Config) string
}

var (
	serverPort    = field{"server_port", func(c *Config) string { return c.ServerPort }}
	dbHost        = field{"db_host", func(c *Config) string { return c.DBHost }}
	dbPort        = field{"db_port", func(c *Config) string { return c.DBPort }}
	dbUser        = field{"db_user", func(c *Config) string { return c.DBUser }}
	dbPassword    = field{"db_password", func(c *Config) string { return c.DBPassword }}
	dbName        = field{"db_name", func(c *Config) string { return c.DBName }}
	jwtSecret     = field{"jwt_secret", func(c *Config) string { return c.JWTSecret }}
	redisEndpoint = field{"redis_url or redis_host", func(c *Config) string {
		if c.RedisURL != "" {
			return c.RedisURL
		}
		return c.RedisHost
	}}

	// Environment-specific requirements
	requirements = map[Environment][]field{
		Development: {serverPort, dbHost, dbPort, dbUser, dbPassword, dbName, jwtSecret},
		Test:        {dbHost, dbPort, dbUser, dbPassword, dbName, jwtSecret},
		CI:          {serverPort, dbHost, dbPort, dbUser, dbPassword, dbName, jwtSecret, redisEndpoint},
		Production:  {serverPort, dbHost, dbPort, dbUser, dbPassword, dbName, jwtSecret, redisEndpoint},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []error
	for _, f := range requirements[GetEnvironment()] {
		if f.value(cfg) == "" {
			errs = append(errs, ValidationError{Field: f.name, Message: "is required"})
		}
	}
	if cfg.LLMTimeout < 0 {
		errs = append(errs, ValidationError{Field: "llm_timeout", Message: "must not be negative"})
	}
	return errors.Join(errs...)
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Payments PaymentsConfig
	Operator OperatorConfig
	Metros   MetrosConfig
	Jobs     JobsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// PaymentsConfig holds payment collaborator settings
type PaymentsConfig struct {
	// Endpoint is the base URL of the checkout-session creator.
	Endpoint string
}

// OperatorConfig holds the moderation boundary credentials
type OperatorConfig struct {
	// TokenHash is the bcrypt hash of the operator bearer token.
	TokenHash string
}

// MetrosConfig holds the metro directory source
type MetrosConfig struct {
	// JSON is an optional array of metro objects overriding the default
	// directory, e.g. [{"slug":"portland-or","city":"Portland",...}].
	JSON string
}

// JobsConfig holds background job settings
type JobsConfig struct {
	PinSweepInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "brewboard"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Payments: PaymentsConfig{
			Endpoint: getEnv("PAYMENTS_ENDPOINT", ""),
		},
		Operator: OperatorConfig{
			TokenHash: getEnv("OPERATOR_TOKEN_HASH", ""),
		},
		Metros: MetrosConfig{
			JSON: getEnv("METROS_JSON", ""),
		},
		Jobs: JobsConfig{
			PinSweepInterval: getDurationEnv("PIN_SWEEP_INTERVAL", 10*time.Minute),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// Payments validation. A malformed endpoint is caught again at checkout
	// time, but a deployment should not come up with one at all.
	if c.Payments.Endpoint == "" {
		errs = append(errs, errors.New("PAYMENTS_ENDPOINT is required"))
	} else if u, err := url.Parse(c.Payments.Endpoint); err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, fmt.Errorf("PAYMENTS_ENDPOINT must be an absolute URL, got '%s'", c.Payments.Endpoint))
	}

	// Operator validation - the moderation boundary must not run open
	if c.IsProduction() && c.Operator.TokenHash == "" {
		errs = append(errs, errors.New("OPERATOR_TOKEN_HASH is required in production"))
	}

	// Jobs validation
	if c.Jobs.PinSweepInterval <= 0 {
		errs = append(errs, errors.New("PIN_SWEEP_INTERVAL must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

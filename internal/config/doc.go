// Package config manages application configuration for the board API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS)
//   - DatabaseConfig: SurrealDB connection settings
//   - PaymentsConfig: checkout collaborator endpoint
//   - OperatorConfig: moderation boundary credentials
//   - MetrosConfig: metro directory override
//   - JobsConfig: background job intervals
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT         - HTTP server port (default: 8080)
//	SERVER_ENV          - development, production, or test
//	DB_HOST             - SurrealDB host
//	DB_PORT             - SurrealDB port
//	DB_NAMESPACE        - Database namespace
//	DB_DATABASE         - Database name
//	PAYMENTS_ENDPOINT   - Base URL of the checkout-session creator
//	OPERATOR_TOKEN_HASH - bcrypt hash of the operator bearer token
//	METROS_JSON         - Optional metro directory override (JSON array)
//	PIN_SWEEP_INTERVAL  - How often expired pins are cleared (default: 10m)
//
// # Default Values
//
// Sensible defaults are provided for development:
//
//	func getEnv(key, defaultValue string) string {
//	    if value := os.Getenv(key); value != "" {
//	        return value
//	    }
//	    return defaultValue
//	}
package config

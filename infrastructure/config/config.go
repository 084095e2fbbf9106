package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion      string
	StationsTable  string
	DistancesTable string
	RoutesTable    string
	EventBusName   string

	// Persistence backend: "dynamodb" or "memory"
	Persistence string

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableEvents  bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:      getEnv("AWS_REGION", "eu-west-1"),
		StationsTable:  getEnv("STATIONS_TABLE", "railrouter-stations"),
		DistancesTable: getEnv("DISTANCES_TABLE", "railrouter-distances"),
		RoutesTable:    getEnv("ROUTES_TABLE", "railrouter-routes"),
		EventBusName:   getEnv("EVENT_BUS_NAME", "railrouter-events"),

		Persistence: getEnv("PERSISTENCE", "dynamodb"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableEvents:  getEnvBool("ENABLE_EVENTS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Persistence != "dynamodb" && c.Persistence != "memory" {
		return fmt.Errorf("PERSISTENCE must be \"dynamodb\" or \"memory\", got %q", c.Persistence)
	}

	if c.Environment == "production" {
		if c.Persistence != "dynamodb" {
			return fmt.Errorf("in-memory persistence is not allowed in production")
		}
		if c.StationsTable == "" || c.DistancesTable == "" || c.RoutesTable == "" {
			return fmt.Errorf("STATIONS_TABLE, DISTANCES_TABLE and ROUTES_TABLE are required in production")
		}
		if c.EnableEvents && c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required when events are enabled")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Persistence drivers selectable at boot
const (
	DriverMemory   = "memory"
	DriverDynamoDB = "dynamodb"
)

// Boot modes selectable at boot
const (
	BootModeEager = "eager"
	BootModeLazy  = "lazy"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Composition root configuration
	PersistenceDriver string // memory | dynamodb
	BootMode          string // eager | lazy

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Lambda configuration
	IsLambda bool

	// Logging
	LogLevel string

	// Feature flags
	EnableCORS   bool
	EnableEvents bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		PersistenceDriver: getEnv("PERSISTENCE_DRIVER", DriverMemory),
		BootMode:          getEnv("BOOT_MODE", BootModeEager),

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "tournaments")),
		EventBusName:  getEnv("EVENT_BUS_NAME", "tournament-events"),

		IsLambda: getEnvBool("IS_LAMBDA", false),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		EnableCORS:   getEnvBool("ENABLE_CORS", true),
		EnableEvents: getEnvBool("ENABLE_EVENTS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present and coherent
func (c *Config) Validate() error {
	switch c.PersistenceDriver {
	case DriverMemory, DriverDynamoDB:
	default:
		return fmt.Errorf("PERSISTENCE_DRIVER must be %q or %q, got %q", DriverMemory, DriverDynamoDB, c.PersistenceDriver)
	}

	switch c.BootMode {
	case BootModeEager, BootModeLazy:
	default:
		return fmt.Errorf("BOOT_MODE must be %q or %q, got %q", BootModeEager, BootModeLazy, c.BootMode)
	}

	if c.PersistenceDriver == DriverDynamoDB && c.DynamoDBTable == "" {
		return fmt.Errorf("DYNAMODB_TABLE is required with the dynamodb driver")
	}
	if c.EnableEvents && c.EventBusName == "" {
		return fmt.Errorf("EVENT_BUS_NAME is required when events are enabled")
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

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

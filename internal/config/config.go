package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/restaurant-pizza-api/internal/database"
	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment string `json:"environment"`
	Port        int    `json:"port"`
	Host        string `json:"host"`

	// Database configuration
	Database database.DatabaseConfig `json:"database"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// CORS configuration
	AllowedOrigins []string `json:"allowed_origins"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, Database: %s, LogLevel: %s, AllowedOrigins: %v}",
		c.Environment, c.Port, c.Host, c.Database.String(), c.LogLevel, c.AllowedOrigins)
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the service runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Level resolves the logrus level: a valid LOG_LEVEL wins, otherwise APP_ENV decides
func (c *Config) Level() logrus.Level {
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		return level
	}
	return LevelForEnvironment(c.Environment)
}

// LevelForEnvironment maps APP_ENV to a default log level
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// The database defaults to a local sqlite file (app.db) when DB_URI is not set
// Returns an error if any environment variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "5555"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid APP_PORT: %d out of range", port)
	}

	dbURI := GetEnvWithDefault("DB_URI", "")
	driver := GetEnvWithDefault("DB_DRIVER", "")
	if driver == "" {
		driver = database.DriverFromURI(dbURI)
	}
	driver = database.NormalizeDriver(driver)
	if driver != database.DriverSQLite && driver != database.DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres)", driver)
	}
	if driver == database.DriverSQLite && dbURI == "" {
		dbURI = "app.db"
	}

	config := &Config{
		Environment: GetEnvWithDefault("APP_ENV", "development"),
		Port:        port,
		Host:        GetEnvWithDefault("APP_HOST", "localhost"),
		Database: database.DatabaseConfig{
			Driver:     driver,
			URI:        dbURI,
			Host:       GetEnvWithDefault("DB_HOST", "localhost"),
			Port:       GetEnvWithDefault("DB_PORT", "5432"),
			User:       GetEnvWithDefault("DB_USER", "postgres"),
			Password:   GetEnvWithDefault("DB_PASSWORD", ""),
			Name:       GetEnvWithDefault("DB_NAME", "restaurants"),
			SSLMode:    GetEnvWithDefault("DB_SSLMODE", "disable"),
			MaxRetries: GetEnvAsType("DB_MAX_RETRIES", 5),
		},
		LogLevel:       GetEnvWithDefault("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(GetEnvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// splitList splits a comma separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value", key)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/pizzastore-api/internal/database"
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
	DBDriver        string `json:"db_driver"`
	DBHost          string `json:"db_host"`
	DBPort          string `json:"db_port"`
	DBName          string `json:"db_name"`
	DBUser          string `json:"db_user"`
	DBPassword      string `json:"db_password"`
	DBSSLMode       string `json:"db_sslmode"`
	DBPath          string `json:"db_path"`
	DBServerVersion string `json:"db_server_version"`
	DatabaseURL     string `json:"database_url"`
	SeedDatabase    bool   `json:"seed_database"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// CORS configuration
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, DBDriver: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, DatabaseURL: %s, SeedDatabase: %t, LogLevel: %s, CORSAllowedOrigins: %v}",
		c.Environment, c.Port, c.Host, c.DBDriver, c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPath,
		maskDatabaseURL(c.DatabaseURL), c.SeedDatabase, c.LogLevel, c.CORSAllowedOrigins)
}

// Address returns the host:port the HTTP server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Database returns the connection settings for the configured backend
func (c *Config) Database() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:        c.DBDriver,
		Host:          c.DBHost,
		Port:          c.DBPort,
		User:          c.DBUser,
		Password:      c.DBPassword,
		Name:          c.DBName,
		SSLMode:       c.DBSSLMode,
		Path:          c.DBPath,
		ServerVersion: c.DBServerVersion,
		URL:           c.DatabaseURL,
	}
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	// Driver-native DSNs (user:pass@tcp(...)) are not URLs
	if !strings.Contains(dbURL, "://") {
		return "[REDACTED]"
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		parsed.User = url.UserPassword(parsed.User.Username(), "[REDACTED]")
	}

	return parsed.String()
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any environment variable is present but invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" && strings.Contains(dbURL, "://") {
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	environment := GetEnvWithDefault("APP_ENV", "development")
	config := &Config{
		Environment:        environment,
		Port:               port,
		Host:               GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:           GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBHost:             GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:             os.Getenv("DB_PORT"),
		DBName:             GetEnvWithDefault("DB_NAME", "pizza"),
		DBUser:             GetEnvWithDefault("DB_USER", "root"),
		DBPassword:         GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:          GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:             GetEnvWithDefault("DB_PATH", database.DefaultSQLitePath),
		DBServerVersion:    GetEnvWithDefault("DB_SERVER_VERSION", database.DefaultMySQLServerVersion),
		DatabaseURL:        dbURL,
		SeedDatabase:       GetEnvAsType("DB_SEED", false),
		LogLevel:           GetEnvWithDefault("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(GetEnvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// LevelForEnvironment maps APP_ENV onto a log level
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
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

// splitList splits a comma separated value, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

package database

import (
	"fmt"
	"strings"
)

// Default values used when a DatabaseConfig field is left empty
const (
	DefaultSQLitePath         = "pizzas.db"
	DefaultMySQLServerVersion = "10.6.12-MariaDB"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (mysql, postgres, sqlite)
	Driver string

	// Networked server configuration (mysql/mariadb and postgres)
	Host     string
	Port     string
	User     string
	Password string
	Name     string

	// PostgreSQL-specific configuration
	SSLMode string

	// MySQL-specific configuration, pins the engine version the dialector targets
	ServerVersion string

	// SQLite-specific configuration
	Path string

	// URL, when set, is used verbatim as the DSN
	URL string
}

// NormalizedDriver returns the canonical driver name: mysql, postgres or sqlite.
// Unknown drivers are returned lower-cased and unchanged.
func (c *DatabaseConfig) NormalizedDriver() string {
	switch driver := strings.ToLower(strings.TrimSpace(c.Driver)); driver {
	case "mysql", "mariadb":
		return "mysql"
	case "postgres", "postgresql":
		return "postgres"
	case "sqlite", "sqlite3", "":
		return "sqlite"
	default:
		return driver
	}
}

// DefaultPort returns the conventional port for the configured driver
func (c *DatabaseConfig) DefaultPort() string {
	switch c.NormalizedDriver() {
	case "mysql":
		return "3306"
	case "postgres":
		return "5432"
	default:
		return ""
	}
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	url := ""
	if c.URL != "" {
		url = "[REDACTED]"
	}
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, ServerVersion: %s, Path: %s, URL: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.ServerVersion, c.Path, url)
}

// DSN builds a Data Source Name string based on the driver
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	port := c.Port
	if port == "" {
		port = c.DefaultPort()
	}

	switch c.NormalizedDriver() {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, port, c.Name)
	case "postgres":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, port, sslMode)
	case "sqlite":
		if c.Path == "" {
			return DefaultSQLitePath
		}
		return c.Path
	default:
		return ""
	}
}

package database

import (
	"fmt"
	"net/url"
	"strings"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, sqlite)
	Driver string

	// URI is a full connection string; when set it wins over the discrete fields
	URI string

	// PostgreSQL-specific configuration
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite-specific configuration
	Path string

	// MaxRetries is the number of connection attempts made by InitDatabase
	MaxRetries int
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, URI: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, MaskURI(c.URI), c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DriverFromURI infers the driver from a connection string.
// postgres:// and postgresql:// select postgres, anything else is treated as a sqlite path.
func DriverFromURI(uri string) string {
	lower := strings.ToLower(uri)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// NormalizeDriver maps driver aliases to the supported names; unknown drivers are returned lowercased
func NormalizeDriver(driver string) string {
	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case "postgres", "postgresql":
		return DriverPostgres
	case "sqlite", "sqlite3", "":
		return DriverSQLite
	default:
		return d
	}
}

// DSN builds a Data Source Name string based on the driver
func (c *DatabaseConfig) DSN() string {
	switch NormalizeDriver(c.Driver) {
	case DriverPostgres:
		if c.URI != "" {
			return c.URI
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case DriverSQLite:
		path := c.Path
		if c.URI != "" {
			path = sqlitePath(c.URI)
		}
		return withForeignKeys(path)
	default:
		return ""
	}
}

// sqlitePath accepts both plain paths and sqlite:///path URLs
func sqlitePath(uri string) string {
	if rest, ok := strings.CutPrefix(uri, "sqlite:///"); ok {
		return rest
	}
	return uri
}

// withForeignKeys turns on foreign key enforcement for every pooled sqlite connection
func withForeignKeys(path string) string {
	if path == "" || strings.Contains(path, "_foreign_keys=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=1"
	}
	return path + "?_foreign_keys=1"
}

// MaskURI masks the password of a URL-style connection string
func MaskURI(uri string) string {
	if !strings.Contains(uri, "://") {
		return uri
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "REDACTED")
		}
	}

	return parsed.String()
}

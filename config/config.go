package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// HTTP Server
	Port        string
	CORSOrigins string

	// Database
	DatabaseDriver  string
	DatabaseURL     string
	DatabaseSSLMode string

	// Sessions
	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool
	BcryptCost   int

	// Logging
	LogLevel  string
	LogFormat string

	// set values that did not parse; reported by Validate
	parseErrors []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	env := &envReader{}
	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		DatabaseDriver:  getEnv("DATABASE_DRIVER", DriverPostgres),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DatabaseSSLMode: getEnv("DATABASE_SSLMODE", "require"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     env.getDuration("TOKEN_TTL", 30*24*time.Hour),
		CookieSecure: env.getBool("COOKIE_SECURE", false),
		BcryptCost:   env.getInt("BCRYPT_COST", bcrypt.DefaultCost),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
	cfg.parseErrors = env.errors
	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string(nil), c.parseErrors...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errors = append(errors, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]", c.DatabaseDriver, DriverPostgres, DriverSQLite))
	}
	if c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL environment variable not set")
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET environment variable not set")
	} else if len(c.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET must be at least 16 bytes")
	}
	if c.TokenTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid token ttl %v: must be positive", c.TokenTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errors = append(errors, fmt.Sprintf("invalid bcrypt cost %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'json' or 'console'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// DSN returns the connection string for the configured driver. Postgres
// DSNs without an explicit sslmode get the configured one appended, as a
// query parameter for URLs and as a key=value pair otherwise.
func (c *Config) DSN() string {
	dsn := c.DatabaseURL
	if c.DatabaseDriver != DriverPostgres || strings.Contains(dsn, "sslmode") {
		return dsn
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return strings.TrimSpace(dsn) + " sslmode=" + c.DatabaseSSLMode
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "sslmode=" + c.DatabaseSSLMode
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses typed variables and remembers the ones that are set
// but malformed, so Validate can report them instead of silently using the
// default.
type envReader struct {
	errors []string
}

func (r *envReader) getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		r.errors = append(r.errors, fmt.Sprintf("invalid %s '%s': must be an integer", key, value))
		return defaultValue
	}
	return i
}

func (r *envReader) getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		r.errors = append(r.errors, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
		return defaultValue
	}
	return b
}

func (r *envReader) getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		r.errors = append(r.errors, fmt.Sprintf("invalid %s '%s': must be a duration such as 720h", key, value))
		return defaultValue
	}
	return d
}

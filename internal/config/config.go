package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration options for the planner data-access core
type Config struct {
	Database    DatabaseConfig    `koanf:"database" yaml:"database"`
	Security    SecurityConfig    `koanf:"security" yaml:"security"`
	Application ApplicationConfig `koanf:"application" yaml:"application"`
}

// DatabaseConfig holds the connection parameters handed to the database
// driver. Name is the schema for postgres and the file name for sqlite.
type DatabaseConfig struct {
	Driver   string `koanf:"driver" yaml:"driver" validate:"required,oneof=sqlite postgres"`
	Host     string `koanf:"host" yaml:"host" validate:"required_if=Driver postgres"`
	Port     int    `koanf:"port" yaml:"port" validate:"required_if=Driver postgres,min=0,max=65535"`
	User     string `koanf:"user" yaml:"user" validate:"required_if=Driver postgres"`
	Password string `koanf:"password" yaml:"password"`
	Name     string `koanf:"name" yaml:"name" validate:"required"`
	Dir      string `koanf:"dir" yaml:"dir" validate:"required_if=Driver sqlite"`
	SSLMode  string `koanf:"ssl_mode" yaml:"ssl_mode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
}

// SecurityConfig holds password hashing parameters
type SecurityConfig struct {
	BcryptCost int `koanf:"bcrypt_cost" yaml:"bcrypt_cost" validate:"min=4,max=31"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Environment string `koanf:"environment" yaml:"environment" validate:"oneof=development testing production"`
	Verbose     bool   `koanf:"verbose" yaml:"verbose"`
	LogLevel    string `koanf:"log_level" yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat   string `koanf:"log_format" yaml:"log_format" validate:"oneof=json console"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:  "sqlite",
			Host:    "localhost",
			Port:    5432,
			Name:    "planner.db",
			Dir:     ".",
			SSLMode: "disable",
		},
		Security: SecurityConfig{
			BcryptCost: 10,
		},
		Application: ApplicationConfig{
			Environment: "production",
			LogLevel:    "info",
			LogFormat:   "console",
		},
	}
}

// DriverName returns the database/sql driver name registered for the configured driver
func (d DatabaseConfig) DriverName() string {
	return d.Driver
}

// DSN renders the driver specific connection string
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case "postgres":
		hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
			url.QueryEscape(d.User),
			url.QueryEscape(d.Password),
			hostPort,
			d.Name,
			sslMode,
		)
	default:
		// Every bridged call opens its own connection, so concurrent
		// openers need a busy timeout instead of failing on SQLITE_BUSY.
		return "file:" + filepath.Join(d.Dir, d.Name) + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
}

var validate = validator.New()

// Validate validates the configuration and returns the first failing field
// as a ConfigError
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigError{Field: "config", Message: err.Error()}
	}

	fe := fieldErrs[0]
	return &ConfigError{
		Field:   fieldPath(fe.Namespace()),
		Message: describe(fe),
	}
}

// fieldPath turns "Config.Database.SSLMode" into "database.sslmode"
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "value is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

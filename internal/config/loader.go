package config

import (
	"fmt"
	"os"
	"strings"

	// Loads a .env file from the working directory into the process
	// environment before any PLANNER_ variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable the loader reads.
// PLANNER_DATABASE_HOST maps to database.host, PLANNER_DATABASE_SSL_MODE to
// database.ssl_mode.
const EnvPrefix = "PLANNER_"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// defaults, then the optional YAML file at path, then PLANNER_ environment
// variables. The result is validated.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		if err := l.config.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(path string, overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile decodes a YAML document over the current values. Keys absent
// from the file keep their previous value.
func (c *Config) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnvironment overlays PLANNER_ environment variables
func (c *Config) LoadFromEnvironment() error {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", c); err != nil {
		return fmt.Errorf("decode environment: %w", err)
	}
	return nil
}

// envKey maps PLANNER_SECTION_FIELD_NAME to section.field_name
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDriver   *string
	DBHost     *string
	DBPort     *int
	DBUser     *string
	DBPassword *string
	DBName     *string
	DBDir      *string

	// Application overrides
	Environment *string
	Verbose     *bool
	LogLevel    *string
	LogFormat   *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDriver != nil {
		config.Database.Driver = *overrides.DBDriver
	}
	if overrides.DBHost != nil {
		config.Database.Host = *overrides.DBHost
	}
	if overrides.DBPort != nil {
		config.Database.Port = *overrides.DBPort
	}
	if overrides.DBUser != nil {
		config.Database.User = *overrides.DBUser
	}
	if overrides.DBPassword != nil {
		config.Database.Password = *overrides.DBPassword
	}
	if overrides.DBName != nil {
		config.Database.Name = *overrides.DBName
	}
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}

	if overrides.Environment != nil {
		config.Application.Environment = *overrides.Environment
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Application.LogFormat = *overrides.LogFormat
	}
}

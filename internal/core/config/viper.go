package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	v.SetDefault("database_url", "sqlite://treeline.db")
	v.SetDefault("default_namespace", "logic_db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Bind environment variables with TL_ prefix
	v.SetEnvPrefix("TL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:      v.GetString("database_url"),
		DefaultNamespace: v.GetString("default_namespace"),
		LogLevel:         v.GetString("log.level"),
		LogFormat:        v.GetString("log.format"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the database scheme, namespace and log settings.
func validateConfig(cfg *Config) error {
	switch {
	case strings.HasPrefix(cfg.DatabaseURL, "sqlite://"):
	case strings.HasPrefix(cfg.DatabaseURL, "postgres://"):
	default:
		return fmt.Errorf("database_url must use sqlite:// or postgres:// scheme, got %q", cfg.DatabaseURL)
	}
	if cfg.DefaultNamespace == "" {
		return fmt.Errorf("default_namespace cannot be empty")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", cfg.LogFormat)
	}
	return nil
}

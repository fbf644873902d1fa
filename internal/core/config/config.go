// Package config provides configuration management for treeline tooling.
package config

// Config holds settings shared by every treeline command: where the
// snapshot store lives, which namespace commands operate on by default,
// and how the process logs.
type Config struct {
	DatabaseURL      string
	DefaultNamespace string
	LogLevel         string
	LogFormat        string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		DatabaseURL:      "sqlite://treeline.db",
		DefaultNamespace: "logic_db",
		LogLevel:         "info",
		LogFormat:        "console",
	}
}

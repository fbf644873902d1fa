package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keelworks/treeline/internal/core/config"
	"github.com/keelworks/treeline/internal/core/db"
	"github.com/keelworks/treeline/internal/core/governance"
	"github.com/keelworks/treeline/internal/core/logging"
	"github.com/keelworks/treeline/internal/ruleconfig"
)

var (
	configFile string
	dbURL      string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "treeline",
	Short: "Treeline rule configuration snapshot tool",
	Long:  `Treeline converts rule configurations to path-addressed tuples and manages their snapshots.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads file/env configuration and layers CLI flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}

// openService opens the database and wires the governance service on top of
// the built-in tuple engine. The caller closes the returned connection.
func openService(cfg *config.Config, logger *zap.Logger) (*sqlx.DB, *governance.Service, error) {
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	store, err := db.NewTupleStore(conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	service, err := governance.NewService(ruleconfig.Builtin(), store, ruleconfig.Prototypes(), logger)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, service, nil
}

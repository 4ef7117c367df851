// Package config loads the application configuration and the offline
// application input files.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Configuration holds all runtime settings of the validation service.
type Configuration struct {
	DBPath     string `mapstructure:"db_path"`
	ListenAddr string `mapstructure:"listen_addr"`

	// Optional override files for the built-in statutory tables.
	RegulatoryFile  string `mapstructure:"regulatory_file"`
	RegionTableFile string `mapstructure:"region_table_file"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// LoadConfiguration reads the YAML configuration at configPath. An empty
// path yields the defaults; environment variables prefixed WOHNVAL_
// override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetDefault("db_path", "wohnval.db")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("WOHNVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// InitializeLogger creates a zap logger based on configuration and an
// optional CLI level override.
func InitializeLogger(loggingConfig LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}

	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "", "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("unrecognized log level %s", level)
	}

	var zapConfig zap.Config
	if loggingConfig.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger, %s", err)
	}
	return logger, nil
}

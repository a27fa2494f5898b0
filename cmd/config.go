package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/semka95/repositories/backend/store"
)

// ConfigEnv names the environment variable holding the config file path
const ConfigEnv = "REPOSITORIES_CONFIG"

// Config stores app configuration
type Config struct {
	Server struct {
		Address         string `yaml:"address"`
		Timeout         int    `yaml:"timeout"`
		ShutdownTimeout int    `yaml:"shutdown_timeout"`
		OtlpAddress     string `yaml:"otlp_address"`
	} `yaml:"server"`
	Store store.Config `yaml:"store"`
}

// DefaultConfig creates config used when no config file is given
func DefaultConfig() *Config {
	cfg := new(Config)
	cfg.Server.Address = ":3333"
	cfg.Server.Timeout = 2
	cfg.Server.ShutdownTimeout = 5
	return cfg
}

// AppConfig reads config from file and creates config struct,
// keys missing from the file keep their default values
func AppConfig(cfgPath string, logger *zap.Logger) (*Config, error) {
	f, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("can't open config file: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			logger.Error("can't close config file", zap.Error(err))
		}
	}()

	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	err = decoder.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("can't decode config file: %w", err)
	}

	if cfg.Server.Timeout <= 0 {
		return nil, fmt.Errorf("server.timeout must be positive, got %d", cfg.Server.Timeout)
	}

	return cfg, nil
}

// LoadConfig reads config from file named by ConfigEnv, or returns defaults when it is unset
func LoadConfig(logger *zap.Logger) (*Config, error) {
	configPath, ok := os.LookupEnv(ConfigEnv)
	if !ok {
		logger.Info("config file is not specified, using defaults", zap.String("env", ConfigEnv))
		return DefaultConfig(), nil
	}

	logger.Info("Config path", zap.String("path", configPath))
	return AppConfig(configPath, logger)
}

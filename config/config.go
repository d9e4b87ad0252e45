// Package config loads server configuration from config.yaml and the
// environment. Environment variables override file values using the
// ONBOARDING_ prefix with underscores for nesting, for example
// ONBOARDING_DB_DRIVER or ONBOARDING_SERVER_PORT.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the configuration for the application.
type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	DB struct {
		Driver string `mapstructure:"driver"` // memory | sqlite | postgres
		Path   string `mapstructure:"path"`   // sqlite file path
		URL    string `mapstructure:"url"`    // postgres connection string
	} `mapstructure:"db"`
}

// Load reads configuration from a file and the environment. A missing
// config file is not an error; defaults and env vars still apply.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("onboarding")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("db.driver", DriverSQLite)
	viper.SetDefault("db.path", "onboarding.db")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverMemory, DriverSQLite:
		return nil
	case DriverPostgres:
		if c.DB.URL == "" {
			return errors.New("db.url is required for the postgres driver")
		}
		return nil
	default:
		return errors.New("unknown db.driver: " + c.DB.Driver)
	}
}

// SPDX-License-Identifier: MIT

// Package config loads the console's settings from an env file & the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config defines the console's settings.
type Config struct {
	Bus           string        `mapstructure:"BUS" validate:"oneof=session system"`
	LogLevel      string        `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat     string        `mapstructure:"LOG_FORMAT" validate:"oneof=text json"`
	Debug         bool          `mapstructure:"DEBUG"`
	FilterAliases bool          `mapstructure:"FILTER_ALIASES"`
	PoolSize      int           `mapstructure:"POOL_SIZE" validate:"gte=1,lte=1024"`
	CallTimeout   time.Duration `mapstructure:"CALL_TIMEOUT" validate:"gt=0"`
}

const (
	// EnvPrefix prefixes environment overrides, e.g. DBUS_CONSOLE_BUS.
	EnvPrefix = "DBUS_CONSOLE"

	configName = "dbus-console"
	configType = "env"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

var validate = validator.New()

// Defaults obtains the settings used for missing entries.
func Defaults() Config {
	return Config{
		Bus:           "session",
		LogLevel:      "info",
		LogFormat:     "text",
		FilterAliases: true,
		PoolSize:      8,
		CallTimeout:   5 * time.Second,
	}
}

// New creates a viper instance holding the defaults & environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	def := Defaults()
	v.SetDefault("BUS", def.Bus)
	v.SetDefault("LOG_LEVEL", def.LogLevel)
	v.SetDefault("LOG_FORMAT", def.LogFormat)
	v.SetDefault("DEBUG", def.Debug)
	v.SetDefault("FILTER_ALIASES", def.FilterAliases)
	v.SetDefault("POOL_SIZE", def.PoolSize)
	v.SetDefault("CALL_TIMEOUT", def.CallTimeout)

	return v
}

// Load reads dbus-console.env from the paths, if present, into a validated Config.
func Load(v *viper.Viper, paths ...string) (config Config, err error) {
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}

	err = config.Validate()

	return
}

// Validate checks the Config's values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Logger creates a logrus.Logger following the Config.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Debug {
		level = logrus.DebugLevel
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger, nil
}

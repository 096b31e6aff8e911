// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package config loads the fmprokit command configuration from flags, FMPRO_*
// environment variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/adrixdax/FMProKit2/internal/constants"
)

// EnvPrefix is prepended to every environment variable, e.g. FMPRO_HOST.
const EnvPrefix = "FMPRO"

// Config holds the connection, credentials and presentation settings of the CLI.
type Config struct {
	// Connection
	Host      string        `mapstructure:"host" validate:"required"`
	Database  string        `mapstructure:"database" validate:"required"`
	Version   string        `mapstructure:"version" validate:"oneof=v1 v2 v4 vLatest"`
	Scheme    string        `mapstructure:"scheme" validate:"oneof=http https"`
	BasePath  string        `mapstructure:"base_path"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent"`

	// Authentication
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	UseToken bool   `mapstructure:"use_token"` // trade the credentials for a session token first

	// Output and logging
	Output    string `mapstructure:"output" validate:"oneof=json csv table"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=console json"`
	Verbose   bool   `mapstructure:"verbose"`
}

// HasBasicAuth returns true if a username is configured. FileMaker accounts may have
// an empty password.
func (c *Config) HasBasicAuth() bool {
	return c.Username != ""
}

// Load reads configPath (or config.yaml from the usual locations when empty), then
// layers FMPRO_* variables and the changed flags of flags on top. A missing default
// config file is not an error; a missing explicit one is.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				bindErr = errors.Join(bindErr, err)
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("error binding flags: %w", bindErr)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".fmprokit"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can reach it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "")
	v.SetDefault("database", "")
	v.SetDefault("version", "vLatest")
	v.SetDefault("scheme", constants.DefaultScheme)
	v.SetDefault("base_path", constants.DefaultBasePath)
	v.SetDefault("timeout", constants.DefaultTimeout*time.Second)
	v.SetDefault("user_agent", constants.DefaultUserAgent)

	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("use_token", false)

	v.SetDefault("output", "json")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("verbose", false)
}

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	err := structValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := keyOf(fe.StructField())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, key+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("invalid %s: %v (must be one of %s)", key, fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("invalid %s: %v", key, fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// keyOf maps a Config field name back to its mapstructure key.
func keyOf(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && 'A' <= r && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

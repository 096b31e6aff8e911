// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fmprokit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
host: fms.example.com
database: Contacts
version: v4
timeout: 5s
username: admin
password: secret
output: table
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "fms.example.com", cfg.Host)
	assert.Equal(t, "Contacts", cfg.Database)
	assert.Equal(t, "v4", cfg.Version)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "table", cfg.Output)
	assert.True(t, cfg.HasBasicAuth())

	// defaults
	assert.Equal(t, "https", cfg.Scheme)
	assert.Equal(t, "fmi/odata", cfg.BasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "host: fms.example.com\ndatabase: Contacts\n")
	t.Setenv("FMPRO_DATABASE", "Inventory")
	t.Setenv("FMPRO_USE_TOKEN", "true")
	t.Setenv("FMPRO_LOG_LEVEL", "debug")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Inventory", cfg.Database)
	assert.True(t, cfg.UseToken)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("FMPRO_HOST", "env.example.com")
	t.Setenv("FMPRO_DATABASE", "Contacts")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.String("log-level", "info", "")
	flags.String("output", "json", "")
	require.NoError(t, flags.Parse([]string{"--host", "flag.example.com", "--log-level", "warn"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "flag.example.com", cfg.Host)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.ErrorContains(t, err, "error reading config")
}

func TestHasBasicAuth(t *testing.T) {
	assert.True(t, (&Config{Username: "admin", Password: "secret"}).HasBasicAuth())
	assert.True(t, (&Config{Username: "guest"}).HasBasicAuth())
	assert.False(t, (&Config{Password: "secret"}).HasBasicAuth())
	assert.False(t, (&Config{}).HasBasicAuth())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Host:      "fms.example.com",
			Database:  "Contacts",
			Version:   "vLatest",
			Scheme:    "https",
			Timeout:   time.Second,
			Output:    "json",
			LogLevel:  "info",
			LogFormat: "console",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing host", func(c *Config) { c.Host = "" }, "host is required"},
		{"missing database", func(c *Config) { c.Database = "" }, "database is required"},
		{"bad version", func(c *Config) { c.Version = "v3" }, "invalid version: v3 (must be one of v1 v2 v4 vLatest)"},
		{"bad scheme", func(c *Config) { c.Scheme = "ftp" }, "invalid scheme: ftp"},
		{"bad output", func(c *Config) { c.Output = "xml" }, "invalid output: xml"},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, "invalid log_level: trace"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "invalid timeout: 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

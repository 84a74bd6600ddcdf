// SPDX-License-Identifier: MIT
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	type tc struct {
		name      string
		file      string
		env       map[string]string
		want      Config
		wantError bool
	}

	tests := []tc{
		{
			name: "defaults_without_file",
			want: Defaults(),
		},
		{
			name: "file_values",
			file: "BUS=system\nLOG_LEVEL=debug\nLOG_FORMAT=json\nPOOL_SIZE=2\nCALL_TIMEOUT=1s\nFILTER_ALIASES=false\n",
			want: Config{
				Bus:           "system",
				LogLevel:      "debug",
				LogFormat:     "json",
				FilterAliases: false,
				PoolSize:      2,
				CallTimeout:   time.Second,
			},
		},
		{
			name: "environment_overrides_file",
			file: "BUS=system\n",
			env:  map[string]string{"DBUS_CONSOLE_BUS": "session", "DBUS_CONSOLE_DEBUG": "true"},
			want: func() Config {
				c := Defaults()
				c.Debug = true
				return c
			}(),
		},
		{
			name:      "unknown_bus",
			file:      "BUS=starter\n",
			wantError: true,
		},
		{
			name:      "invalid_pool_size",
			env:       map[string]string{"DBUS_CONSOLE_POOL_SIZE": "0"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, configName+"."+configType), []byte(tt.file), 0o600))
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			got, err := Load(New(), dir)
			if tt.wantError {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Logger(t *testing.T) {
	c := Defaults()
	c.LogFormat = "json"

	logger, err := c.Logger()
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	c.Debug = true
	logger, err = c.Logger()
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	c.LogLevel = "loud"
	_, err = c.Logger()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucrnz/humanspan/pkg/humantime"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, "language: deutsch\noutput: json\nlog:\n  level: debug\n  format: json\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, humantime.German, cfg.Lang())
		assert.Equal(t, OutputJSON, cfg.OutputFormat())
		assert.Equal(t, "debug", cfg.LogLevel())
		assert.Equal(t, "json", cfg.LogFormat())
		assert.Equal(t, path, cfg.Path())
	})

	t.Run("empty file uses defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t, humantime.English, cfg.Lang())
		assert.Equal(t, DefaultOutput, cfg.OutputFormat())
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel())
		assert.Equal(t, DefaultLogFormat, cfg.LogFormat())
	})

	t.Run("missing default file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, humantime.English, cfg.Lang())
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "language: [english\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed config file")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{name: "empty", cfg: Config{}, ok: true},
		{name: "valid", cfg: Config{Language: "de", Output: "ticks", Log: Log{Level: "error", Format: "text"}}, ok: true},
		{name: "unknown language", cfg: Config{Language: "fr"}},
		{name: "unknown output", cfg: Config{Output: "yaml"}},
		{name: "unknown level", cfg: Config{Log: Log{Level: "loud"}}},
		{name: "unknown format", cfg: Config{Log: Log{Format: "xml"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

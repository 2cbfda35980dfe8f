package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "options-tracker/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvTimezone, "")
	t.Setenv(EnvLogLevel, "")
}

func TestLoadCreatesTemplate(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "snapshots.db"), cfg.Storage.DBPath)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, "Local", cfg.Display.Timezone)
	assert.True(t, cfg.Display.ColorEnabled)
	assert.False(t, cfg.Display.ShowCancelled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Logging.MaxSize)
	assert.Equal(t, filepath.Join(dir, "logs", "options-tracker.log"), cfg.Logging.FilePath)
}

func TestLoadReadsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := `
[storage]
db_path = "/tmp/custom.db"

[export]
include_cancelled = true
aggregate = true

[display]
timezone = "America/New_York"
show_cancelled = true

[logging]
level = "debug"
file = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.Storage.DBPath)
	assert.True(t, cfg.Export.IncludeCancelled)
	assert.True(t, cfg.Export.Aggregate)
	assert.True(t, cfg.Display.ShowCancelled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.File)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDB, "/tmp/env.db")
	t.Setenv(EnvTimezone, "UTC")
	t.Setenv(EnvLogLevel, "WARN")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.Storage.DBPath)
	assert.Equal(t, "UTC", cfg.Display.Timezone)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{DBPath: "x.db"},
			Display: DisplayConfig{Timezone: "Local"},
			Logging: LoggingConfig{Level: "info"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad timezone", func(c *Config) { c.Display.Timezone = "Mars/Olympus" }, "display.timezone"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"empty db", func(c *Config) { c.Storage.DBPath = "" }, "storage.db_path"},
		{"negative rotation", func(c *Config) { c.Logging.MaxAge = -1 }, "logging"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)

			var ve *apperrors.ValidationError
			require.True(t, apperrors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.True(t, apperrors.Is(err, apperrors.ErrConfigInvalid))
		})
	}
}

func TestInvalidFileFailsLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[logging]\nlevel = \"loud\"\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConfigInvalid))
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/ot", "config.toml"), Path("/etc/ot"))
	assert.Equal(t, filepath.Join(DefaultConfigDir(), "config.toml"), Path(""))
}

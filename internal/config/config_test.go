package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory and the working directory at a temp dir
// so no real config or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, key := range []string{
		"MOODY_DB_PATH", "MOODY_LOG_LEVEL", "MOODY_LOG_FILE",
		"MOODY_WEEK_START", "MOODY_DEFAULT_VIEW", "MOODY_TIMEZONE",
	} {
		t.Setenv(key, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "moody", "moody.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(dir, "state", "moody", "moody.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "day", cfg.DefaultView)

	day, err := cfg.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, DefaultPath(), `
database_path: /tmp/moods.db
log_level: debug
week_start: sunday
default_view: Month
timezone: UTC
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/moods.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "month", cfg.DefaultView)
	day, _ := cfg.WeekStartDay()
	assert.Equal(t, time.Sunday, day)
	loc, _ := cfg.Location()
	assert.Equal(t, "UTC", loc.String())
	assert.Equal(t, filepath.Join(dir, "state", "moody", "moody.log"), cfg.LogFile, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	writeFile(t, DefaultPath(), "default_view: month\nlog_level: debug\n")
	t.Setenv("MOODY_DEFAULT_VIEW", "week")
	t.Setenv("MOODY_DB_PATH", "/var/tmp/env.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "week", cfg.DefaultView)
	assert.Equal(t, "/var/tmp/env.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "MOODY_WEEK_START=sunday\n")
	// godotenv never overrides variables that are already set, even to "".
	require.NoError(t, os.Unsetenv("MOODY_WEEK_START"))
	t.Cleanup(func() { os.Unsetenv("MOODY_WEEK_START") })

	cfg, err := Load("")
	require.NoError(t, err)
	day, _ := cfg.WeekStartDay()
	assert.Equal(t, time.Sunday, day)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"week start", "week_start: friday\n"},
		{"default view", "default_view: year\n"},
		{"timezone", "timezone: Mars/Olympus\n"},
		{"malformed yaml", "week_start: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.yaml")
			writeFile(t, path, tc.yaml)

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate_ExpandsHome(t *testing.T) {
	isolate(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	cfg.DatabasePath = "~/moods/moody.db"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(home, "moods", "moody.db"), cfg.DatabasePath)
}

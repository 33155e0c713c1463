package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/moody/internal/db"
	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/store"
)

// isolate points every config, data and state location at a temp dir and
// returns a database path inside it
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{"MOODY_DB_PATH", "MOODY_LOG_LEVEL", "MOODY_LOG_FILE", "MOODY_WEEK_START", "MOODY_DEFAULT_VIEW"} {
		t.Setenv(k, "")
	}
	t.Setenv("MOODY_TIMEZONE", "UTC")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return filepath.Join(dir, "moody.db")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestLogAndShow(t *testing.T) {
	dbPath := isolate(t)

	out := mustRun(t, "--db", dbPath, "log", "tired", "--date", "2024-05-01", "--note", "long day")
	assert.Contains(t, out, "Saved 😴 Tired for 2024-05-01")

	out = mustRun(t, "--db", dbPath, "show", "2024-05-01")
	assert.Contains(t, out, "2024-05-01  😴 Tired")
	assert.Contains(t, out, "long day")

	out = mustRun(t, "--db", dbPath, "show", "2024-05-02")
	assert.Equal(t, "No entry for 2024-05-02\n", out)
}

func TestLog_KeepsNoteVerbatim(t *testing.T) {
	dbPath := isolate(t)
	note := "  indented\nsecond line  "

	mustRun(t, "--db", dbPath, "log", "neutral", "--date", "2024-05-01", "--note", note)

	database, err := db.New(dbPath)
	require.NoError(t, err)
	defer database.Close()

	e, ok := store.New(database, store.WithLocation(time.UTC)).GetForDate(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, note, e.Note)
}

func TestLog_SameDayReplaces(t *testing.T) {
	dbPath := isolate(t)

	mustRun(t, "--db", dbPath, "log", "happy", "--date", "2024-05-01", "--note", "sunny")
	mustRun(t, "--db", dbPath, "log", "tired", "--date", "2024-05-01")

	out := mustRun(t, "--db", dbPath, "list", "--view", "day", "--date", "2024-05-01")
	assert.Equal(t, 1, strings.Count(out, "2024-05-01  "))
	assert.Contains(t, out, "Tired")
	assert.NotContains(t, out, "Happy")
	assert.NotContains(t, out, "sunny")
}

func TestLog_RejectsUnknownMood(t *testing.T) {
	dbPath := isolate(t)

	_, err := run(t, "--db", dbPath, "log", "ecstatic", "--date", "2024-05-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidMood)
}

func TestLog_RejectsBadDate(t *testing.T) {
	dbPath := isolate(t)

	_, err := run(t, "--db", dbPath, "log", "happy", "--date", "05/01/2024")
	assert.Error(t, err)
}

func TestRm_Idempotent(t *testing.T) {
	dbPath := isolate(t)
	mustRun(t, "--db", dbPath, "log", "sad", "--date", "2024-05-02")

	out := mustRun(t, "--db", dbPath, "rm", "2024-05-02")
	assert.Equal(t, "Deleted entry for 2024-05-02\n", out)

	out = mustRun(t, "--db", dbPath, "rm", "2024-05-02")
	assert.Equal(t, "No entry for 2024-05-02\n", out)

	out = mustRun(t, "--db", dbPath, "show", "2024-05-02")
	assert.Equal(t, "No entry for 2024-05-02\n", out)
}

func TestList_MonthNewestFirst(t *testing.T) {
	dbPath := isolate(t)
	mustRun(t, "--db", dbPath, "log", "happy", "--date", "2024-05-01")
	mustRun(t, "--db", dbPath, "log", "sad", "--date", "2024-05-03")
	mustRun(t, "--db", dbPath, "log", "angry", "--date", "2024-04-30")

	out := mustRun(t, "--db", dbPath, "list", "--view", "month", "--date", "2024-05-15")
	assert.True(t, strings.HasPrefix(out, "May 2024\n"), out)
	assert.NotContains(t, out, "2024-04-30")

	first, second := strings.Index(out, "2024-05-03"), strings.Index(out, "2024-05-01")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestList_EmptyPeriod(t *testing.T) {
	dbPath := isolate(t)

	out := mustRun(t, "--db", dbPath, "list", "--view", "week", "--date", "2024-05-01")
	assert.Equal(t, "Apr 29 - May 5, 2024\nNo mood entries for this period\n", out)
}

func TestList_RejectsUnknownView(t *testing.T) {
	dbPath := isolate(t)

	_, err := run(t, "--db", dbPath, "list", "--view", "year")
	assert.Error(t, err)
}

func TestMemory_DoesNotPersist(t *testing.T) {
	dbPath := isolate(t)

	out := mustRun(t, "--db", dbPath, "--memory", "log", "happy", "--date", "2024-05-01")
	assert.Contains(t, out, "Saved")
	assert.NoFileExists(t, dbPath)

	out = mustRun(t, "--db", dbPath, "show", "2024-05-01")
	assert.Equal(t, "No entry for 2024-05-01\n", out)
}

func TestDBPathFromEnvironment(t *testing.T) {
	dbPath := isolate(t)
	t.Setenv("MOODY_DB_PATH", dbPath)

	mustRun(t, "log", "excited", "--date", "2024-06-01")
	assert.FileExists(t, dbPath)

	out := mustRun(t, "--db", dbPath, "show", "2024-06-01")
	assert.Contains(t, out, "Excited")
}

func TestVersion(t *testing.T) {
	isolate(t)

	out := mustRun(t, "version")
	assert.Equal(t, "moody dev (commit: none, built: unknown)\n", out)

	out = mustRun(t, "--version")
	assert.Equal(t, "moody dev (commit: none, built: unknown)\n", out)
}

package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/store"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "nested", "moody.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestReadWrite(t *testing.T) {
	database := openTestDB(t)

	_, ok, err := database.Read("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, database.Write("k", "v1"))
	require.NoError(t, database.Write("k", "v2"))

	value, ok, err := database.Read("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
}

func TestSettings(t *testing.T) {
	database := openTestDB(t)

	value, err := database.GetSetting("active_tab")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, database.SetSetting("active_tab", "calendar"))
	value, err = database.GetSetting("active_tab")
	require.NoError(t, err)
	assert.Equal(t, "calendar", value)

	raw, ok, err := database.Read("ui.active_tab")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "calendar", raw)
}

func TestStoreOverDB_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moody.db")
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.New(first, store.WithLocation(time.UTC)).Save(day, models.MoodHappy, "slept well"))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	e, ok := store.New(second, store.WithLocation(time.UTC)).GetForDate(day.Add(10 * time.Hour))
	require.True(t, ok)
	assert.Equal(t, models.MoodHappy, e.Mood)
	assert.Equal(t, "slept well", e.Note)
}

func TestIsDBFile(t *testing.T) {
	database := openTestDB(t)
	p := database.Path()

	assert.True(t, database.IsDBFile(p))
	assert.True(t, database.IsDBFile(p+"-wal"))
	assert.True(t, database.IsDBFile(p+"-journal"))
	assert.False(t, database.IsDBFile(filepath.Join(filepath.Dir(p), "other.db")))
}

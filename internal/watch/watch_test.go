package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New(dir, func(name string) bool {
		return strings.HasPrefix(filepath.Base(name), "moody.db")
	}, nil)
	require.NoError(t, err)
	w.SetDebounce(50 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	return w
}

func waitSignal(w *Watcher, d time.Duration) bool {
	select {
	case <-w.Changes():
		return true
	case <-time.After(d):
		return false
	}
}

func TestWatcher_SignalsOnMatchingWrite(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "moody.db"), []byte("x"), 0644))
	require.True(t, waitSignal(w, 2*time.Second), "expected a change signal")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.False(t, waitSignal(w, 200*time.Millisecond))
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	path := filepath.Join(dir, "moody.db-wal")
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0644))
	}

	require.True(t, waitSignal(w, 2*time.Second))
	require.False(t, waitSignal(w, 200*time.Millisecond), "a burst yields one signal")
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
}

func TestWatcher_StopClosesChanges(t *testing.T) {
	w, err := New(t.TempDir(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	received := make(chan bool, 1)
	go func() {
		_, ok := <-w.Changes()
		received <- ok
	}()
	w.Stop()

	select {
	case ok := <-received:
		require.False(t, ok, "receivers see a closed channel")
	case <-time.After(2 * time.Second):
		t.Fatal("receiver still blocked after Stop")
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	w, err := New(t.TempDir(), nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not exit after cancel")
	}
	w.Stop()
}

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// writeAtomic renames a finished file into place so the watcher never
// sees it half written.
func writeAtomic(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	writeFile(t, tmp, content)
	require.NoError(t, os.Rename(tmp, path))
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rescan")
		return Event{}
	}
}

func TestWatcherRescansOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	c, err := New(WithDirectories(Directory{Path: dir}))
	require.NoError(t, err)
	require.NoError(t, c.Scan(context.Background()))
	assert.Empty(t, c.Entries())

	w, err := NewWatcher(c, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	path := filepath.Join(dir, "pizza.nt")
	writeAtomic(t, path, ntDocument("http://example.org/pizza", ""))

	ev := waitEvent(t, w)
	require.NoError(t, ev.Err)
	assert.Contains(t, ev.Paths, path)
	assert.Equal(t, 1, ev.Entries)

	loc, ok := c.DocumentIRI("http://example.org/pizza")
	require.True(t, ok)
	assert.Equal(t, path, loc)

	require.NoError(t, w.Stop())
	for range w.Events() {
	}
	assert.Zero(t, w.DroppedEvents())
}

func TestWatcherIgnoresUncoveredFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	c, err := New(WithDirectories(Directory{Path: dir, Include: []string{"**/*.nt"}}))
	require.NoError(t, err)

	w, err := NewWatcher(c, 10*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	writeFile(t, filepath.Join(dir, "notes.md"), "# notes\n")
	writeAtomic(t, filepath.Join(dir, "food.nt"), ntDocument("http://example.org/food", ""))

	ev := waitEvent(t, w)
	assert.Equal(t, []string{filepath.Join(dir, "food.nt")}, ev.Paths)

	require.NoError(t, w.Stop())
}

func TestWatcherStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := New(WithDirectories(Directory{Path: t.TempDir()}))
	require.NoError(t, err)
	w, err := NewWatcher(c, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	_, open := <-w.Events()
	assert.False(t, open)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, err := New()
	require.NoError(t, err)
	w, err := NewWatcher(c, time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}

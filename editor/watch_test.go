package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) (*Watcher, chanPoster) {
	t.Helper()
	events := make(chanPoster, 16)
	w, err := NewWatcher(events, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, events
}

func TestWatcherReportsWrites(t *testing.T) {
	path := writeTemp(t, "watched.py", "# --++Python++--\n")
	other := filepath.Join(filepath.Dir(path), "other.txt")

	w, events := newTestWatcher(t)
	require.NoError(t, w.Watch(path))

	// Changes to other files in the directory are not reported.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("# --++Python++--\npass\n"), 0o644))

	select {
	case ev := <-events:
		changed, ok := ev.(*FileChangedEvent)
		require.True(t, ok, "got %T", ev)
		assert.Equal(t, path, changed.Path)
		assert.False(t, changed.Removed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change was reported")
	}
}

func TestWatcherQuiet(t *testing.T) {
	path := writeTemp(t, "saved.lua", "-- one")

	w, events := newTestWatcher(t)
	require.NoError(t, w.Watch(path))
	w.Quiet(time.Hour)

	require.NoError(t, os.WriteFile(path, []byte("-- two"), 0o644))

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %T", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStop(t *testing.T) {
	path := writeTemp(t, "gone.rb", "")

	w, events := newTestWatcher(t)
	require.NoError(t, w.Watch(path))
	require.NoError(t, w.Watch(""))

	require.NoError(t, os.WriteFile(path, []byte("puts 1"), 0o644))

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %T", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, _ := newTestWatcher(t)
	err := w.Watch(filepath.Join(t.TempDir(), "nope", "file.txt"))
	assert.Error(t, err)
}

package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: mine\n"), 0o600))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// Unwatched files in the same directory are ignored.
	require.NoError(t, os.WriteFile(other, []byte("id: other\n"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("id: mine\nname: Mine\n"), 0o600))

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	select {
	case got := <-w.Events:
		assert.Equal(t, abs, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for a watched file")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: mine\n"), 0o600))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

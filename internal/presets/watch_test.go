package presets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchReportsNewScript(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLoader(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 8)
	require.NoError(t, l.Watch(ctx, func(name string) { changed <- name }))

	path := filepath.Join(dir, "ring.script")
	require.NoError(t, os.WriteFile(path, []byte("// ring"), 0o644))

	select {
	case name := <-changed:
		require.Equal(t, path, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchWithoutDirectory(t *testing.T) {
	l, err := NewLoader("")
	require.NoError(t, err)
	require.NoError(t, l.Watch(context.Background(), func(string) { t.Fatal("unexpected") }))
}

func TestWatchMissingDirectory(t *testing.T) {
	l, err := NewLoader(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	require.Error(t, l.Watch(context.Background(), func(string) {}))
}

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresFiles(t *testing.T) {
	_, err := New(nil, time.Millisecond)
	assert.Error(t, err)
}

func TestNewDeduplicatesDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{filepath.Join(dir, "a.map"), filepath.Join(dir, "names.txt")}, time.Millisecond)
	require.NoError(t, err)
	assert.Len(t, w.dirs, 1)
	assert.Len(t, w.files, 2)
}

func TestWatcherRerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "world.map")
	otherPath := filepath.Join(dir, "world_edit.map")
	require.NoError(t, os.WriteFile(mapPath, []byte("#terrain 1 0\n"), 0644))

	w, err := New([]string{mapPath}, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			runs.Add(1)
			return errors.New("failures are logged, not fatal")
		})
	}()

	// Give the watcher time to register before touching files.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(otherPath, []byte("output"), 0644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load(), "unrelated files in the directory are ignored")

	require.NoError(t, os.WriteFile(mapPath, []byte("#terrain 1 4\n"), 0644))
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(mapPath, []byte("#terrain 1 8\n"), 0644))
	assert.Eventually(t, func() bool { return runs.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

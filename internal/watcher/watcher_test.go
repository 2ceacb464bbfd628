package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) seen(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.paths {
		if p == path {
			return true
		}
	}
	return false
}

func TestWatcherReportsWritesToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	other := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0o644))

	rec := &recorder{}
	w, err := New(rec.record, nil)
	require.NoError(t, err)
	defer w.Shutdown()

	require.NoError(t, w.Watch(target))

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("hello world"), 0o644))

	abs, err := filepath.Abs(target)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return rec.seen(abs) }, 2*time.Second, 10*time.Millisecond)

	otherAbs, err := filepath.Abs(other)
	require.NoError(t, err)
	assert.False(t, rec.seen(otherAbs))
}

func TestWatcherClear(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0o644))

	rec := &recorder{}
	w, err := New(rec.record, nil)
	require.NoError(t, err)
	defer w.Shutdown()

	require.NoError(t, w.Watch(target))
	w.Clear()

	require.NoError(t, os.WriteFile(target, []byte("changed"), 0o644))
	time.Sleep(100 * time.Millisecond)

	abs, err := filepath.Abs(target)
	require.NoError(t, err)
	assert.False(t, rec.seen(abs))
}

func TestWatchMissingDirectory(t *testing.T) {
	w, err := New(func(string) {}, nil)
	require.NoError(t, err)
	defer w.Shutdown()

	err = w.Watch(filepath.Join(t.TempDir(), "missing", "a.txt"))
	assert.Error(t, err)
}

func TestShutdownIsIdempotent(t *testing.T) {
	w, err := New(func(string) {}, nil)
	require.NoError(t, err)

	w.Shutdown()
	w.Shutdown()
	assert.NoError(t, w.Watch("a.txt"))
}

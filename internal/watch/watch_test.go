package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.csv")
	require.NoError(t, os.WriteFile(path, []byte("id\n1\n"), 0644))

	changed := make(chan string, 4)
	w, err := New(path, 20*time.Millisecond, func(p string) { changed <- p }, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("id\n1\n2\n"), 0644))

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(path)
		require.Equal(t, abs, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	changed := make(chan string, 4)
	w, err := New(path, 20*time.Millisecond, func(p string) { changed <- p }, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	tmp := filepath.Join(dir, ".events.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`[{"id":1}]`), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("rename over the file not reported")
	}
}

func TestWatcher_StopAfterCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := New(path, 0, func(string) {}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
	w.Stop()
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startWatcher(t *testing.T, root string) <-chan []string {
	t.Helper()
	w, err := New(root, 50*time.Millisecond, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	batches := make(chan []string, 16)
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(changed []string) { batches <- changed })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func TestWatcher_ReportsYAMLChanges(t *testing.T) {
	root := t.TempDir()
	batches := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Catalog.yaml"), []byte("kind: Catalog\n"), 0o644))

	got := waitBatch(t, batches)
	assert.Contains(t, got, "Catalog.yaml")
	assert.NotContains(t, got, "notes.txt")
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	batches := startWatcher(t, root)

	dir := filepath.Join(root, "catalogs")
	require.NoError(t, os.Mkdir(dir, 0o755))
	waitBatch(t, batches)

	// Give the new watch a moment to register before writing into it.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Goods.yml"), []byte("kind: Catalog\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case b := <-batches:
			for _, p := range b {
				if p == "catalogs/Goods.yml" {
					return
				}
			}
		case <-deadline:
			t.Fatal("change in new directory not reported")
		}
	}
}

func TestWatcher_SkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o755))

	w, err := New(root, 0, nil)
	require.NoError(t, err)
	defer w.fsw.Close()

	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.Equal(t, []string{root}, w.fsw.WatchList())
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	w, err := New(t.TempDir(), 10*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx, func([]string) { t.Fatal("unexpected callback") }))
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), 0, nil)
	assert.Error(t, err)
}

func TestHidden(t *testing.T) {
	assert.True(t, hidden(".git"))
	assert.False(t, hidden("."))
	assert.False(t, hidden("src"))
}

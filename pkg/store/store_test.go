package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Counter int               `json:"counter"`
	Items   map[string]string `json:"items"`
}

func newTestDoc() *testDoc {
	return &testDoc{
		Items: make(map[string]string),
	}
}

func newStore(t *testing.T, path string, debounce time.Duration) *Store[testDoc] {
	t.Helper()
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")
	return New(l, path, debounce, newTestDoc)
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "doc.json"), time.Second)
	s.Load()

	require.NotNil(t, s.Data())
	require.Empty(t, s.Data().Items)
	require.Zero(t, s.Data().Counter)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"counter": 3, "items`), 0o644))

	s := newStore(t, path, time.Second)
	s.Load()

	// A corrupt file must never abort startup; the default document is used.
	require.NotNil(t, s.Data())
	require.Zero(t, s.Data().Counter)
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	s := newStore(t, path, time.Second)
	s.Load()
	s.Data().Counter = 7
	s.Data().Items["a"] = "b"
	s.Data().Items["c"] = "d"
	s.MarkDirty()
	require.NoError(t, s.Flush())

	fresh := newStore(t, path, time.Second)
	fresh.Load()
	require.Equal(t, s.Data(), fresh.Data())
}

func TestStore_FlushClearsDirty(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "doc.json"), time.Second)
	s.Load()

	require.False(t, s.Dirty())
	s.MarkDirty()
	s.MarkDirty()
	require.True(t, s.Dirty())

	require.NoError(t, s.Flush())
	require.False(t, s.Dirty())
}

func TestStore_DebouncedFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	s := newStore(t, path, 20*time.Millisecond)
	s.Load()

	s.Data().Counter = 1
	s.MarkDirty()
	s.Data().Counter = 2
	s.MarkDirty()

	require.Eventually(t, func() bool {
		return !s.Dirty()
	}, time.Second, 5*time.Millisecond, "debounced flush did not run")

	fresh := newStore(t, path, time.Second)
	fresh.Load()

	// Both marks coalesce into a single flush of the latest state.
	require.Equal(t, 2, fresh.Data().Counter)
}

func TestStore_FlushDuringMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	s := newStore(t, path, time.Millisecond)
	s.Load()

	// Keep mutating while the short debounce lets flushes run concurrently.
	const n = 500
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			s.Lock()
			s.Data().Items[fmt.Sprintf("k%d", i)] = "v"
			s.Unlock()
			s.MarkDirty()
		}
	}()
	<-done
	require.NoError(t, s.Close())

	fresh := newStore(t, path, time.Second)
	fresh.Load()
	require.Len(t, fresh.Data().Items, n)
}

func TestStore_CrashMidWriteLeavesLastFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	s := newStore(t, path, time.Second)
	s.Load()
	s.Data().Counter = 42
	s.MarkDirty()
	require.NoError(t, s.Flush())

	// Simulate a crash mid-write: a temp file exists with partial content but
	// the target was never replaced.
	partial, err := json.Marshal(map[string]any{"counter": 99})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path+".tmp-123", partial[:len(partial)-4], 0o644))

	fresh := newStore(t, path, time.Second)
	fresh.Load()
	require.Equal(t, 42, fresh.Data().Counter)
}

func TestStore_CloseFlushesDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	s := newStore(t, path, time.Hour)
	s.Load()
	s.Data().Counter = 9
	s.MarkDirty()
	require.NoError(t, s.Close())

	fresh := newStore(t, path, time.Second)
	fresh.Load()
	require.Equal(t, 9, fresh.Data().Counter)
}

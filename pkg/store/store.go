// Package store provides a debounced, crash-safe JSON document store. Each
// store owns one file on disk; callers mutate the in-memory document through
// their own registry and mark the store dirty, and the store coalesces dirty
// marks into a single delayed flush.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Jacobbrewer1/porter/pkg/logging"
)

// DefaultDebounce is the default delay between the first dirty mark and the
// flush that it schedules.
const DefaultDebounce = 5 * time.Second

// Store is a durable JSON document of type T.
type Store[T any] struct {
	// l is the logger.
	l *slog.Logger

	// path is the location of the document on disk.
	path string

	// debounce is the delay between the first dirty mark and the flush.
	debounce time.Duration

	// defaultDoc returns a fresh default document. It is used when the file
	// does not exist yet or cannot be decoded.
	defaultDoc func() *T

	// data is the in-memory document. It is owned by the registry layered on
	// top of the store and is never replaced after Load.
	data *T

	// docMu guards the document. Registries hold it across every read and
	// mutation, and Flush holds it while encoding, so no mutation can
	// overlap the encode.
	docMu sync.Mutex

	// mu guards dirty and timer.
	mu sync.Mutex

	// dirty is whether the document has unsaved changes.
	dirty bool

	// timer is the pending debounced flush, if one is scheduled.
	timer *time.Timer

	// flushMu serializes writes to the file.
	flushMu sync.Mutex
}

// New creates a store for the document at path. The document is not read
// until Load is called.
func New[T any](l *slog.Logger, path string, debounce time.Duration, defaultDoc func() *T) *Store[T] {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Store[T]{
		l:          l.With(slog.String("store", filepath.Base(path))),
		path:       path,
		debounce:   debounce,
		defaultDoc: defaultDoc,
	}
}

// Load reads the document from disk. A missing or corrupt file falls back to
// the default document; Load never fails startup.
func (s *Store[T]) Load() {
	s.data = s.defaultDoc()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.l.Warn("Error reading store file, using default document", slog.String(logging.KeyError, err.Error()))
		}
		return
	}

	doc := s.defaultDoc()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.l.Warn("Store file is corrupt, using default document", slog.String(logging.KeyError, err.Error()))
		return
	}
	s.data = doc
}

// Data returns the in-memory document. The caller holds the document lock
// for any read or mutation that can run concurrently with a flush.
func (s *Store[T]) Data() *T {
	return s.data
}

// Lock takes the document lock.
func (s *Store[T]) Lock() {
	s.docMu.Lock()
}

// Unlock releases the document lock.
func (s *Store[T]) Unlock() {
	s.docMu.Unlock()
}

// MarkDirty records that the document has unsaved changes and schedules a
// debounced flush. Marks arriving while a flush is pending are coalesced
// into it.
func (s *Store[T]) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = true
	if s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.Flush(); err != nil {
			// The dirty flag is still set, so the next dirty cycle retries.
			s.l.Error("Error flushing store", slog.String(logging.KeyError, err.Error()))
		}
	})
}

// Flush writes the document to disk atomically: the document is written to a
// temporary file in the same directory and then renamed over the target, so a
// crash mid-write never corrupts the durable copy.
func (s *Store[T]) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	// Encode under the document lock so a registry mutation cannot land
	// mid-marshal. The file write below runs without it.
	s.docMu.Lock()
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.docMu.Unlock()
	if err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error replacing store file: %w", err)
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// Dirty reports whether the document has unsaved changes.
func (s *Store[T]) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Close cancels any pending flush and synchronously flushes the document if
// it is dirty. It is called on shutdown.
func (s *Store[T]) Close() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	s.mu.Unlock()

	if !dirty {
		return nil
	}
	return s.Flush()
}

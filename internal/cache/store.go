package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFlushInterval is the number of entries between implicit flushes.
const DefaultFlushInterval = 100

// ErrCorrupt marks a cache file that exists but cannot be parsed. There is
// no safe partial recovery, so callers are expected to treat it as fatal.
var ErrCorrupt = errors.New("cache file is corrupt")

// Store is a persistent string-to-string translation cache. The on-disk
// form is a flat JSON object, UTF-8 encoded with non-ASCII characters kept
// literal so the file stays human-inspectable.
//
// Store is safe for concurrent use.
type Store struct {
	path          string
	flushInterval int

	mu      sync.RWMutex
	entries map[string]string
}

// Option configures a Store.
type Option func(*Store)

// WithFlushInterval overrides the implicit flush interval. Values below 1
// disable implicit flushing entirely.
func WithFlushInterval(n int) Option {
	return func(s *Store) {
		s.flushInterval = n
	}
}

// Open loads the cache at path. A missing file yields an empty store; an
// existing file that is not a valid JSON string mapping yields an error
// wrapping ErrCorrupt.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path is required")
	}

	store := &Store{
		path:          path,
		flushInterval: DefaultFlushInterval,
		entries:       make(map[string]string),
	}
	for _, opt := range opts {
		opt(store)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read cache file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &store.entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if store.entries == nil {
		store.entries = make(map[string]string)
	}

	return store, nil
}

// Get returns the cached translation for text. Pure lookup, no side
// effects.
func (s *Store) Get(text string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	translation, ok := s.entries[text]
	return translation, ok
}

// Put stores a translation. Whenever the entry count reaches a multiple of
// the flush interval the store is flushed to disk, so an interrupted run
// loses at most one interval's worth of new entries.
func (s *Store) Put(text, translation string) error {
	s.mu.Lock()
	s.entries[text] = translation
	needFlush := s.flushInterval > 0 && len(s.entries)%s.flushInterval == 0
	s.mu.Unlock()

	if needFlush {
		return s.Flush()
	}
	return nil
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Flush writes the full mapping to disk. The snapshot is written to a
// temporary file and renamed into place, so a reader never observes a
// half-written cache.
func (s *Store) Flush() error {
	s.mu.RLock()
	data, err := marshalEntries(s.entries)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// marshalEntries encodes the mapping as indented JSON without escaping
// non-ASCII text, matching the cache files produced by earlier versions.
func marshalEntries(entries map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

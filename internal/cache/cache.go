// Package cache implements the persistent per-file feature cache: a single
// binary file mapping (path, mtime_ns, size) to the extracted feature
// bundle, loaded wholesale at startup and written back once at the end.
package cache

import (
	"bytes"
	"encoding/gob"
	"os"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/panbanda/combfino/internal/features"
)

// formatVersion is embedded in every cache file so a mismatched on-disk
// format is rejected as empty rather than misread.
const formatVersion = 1

var magic = [4]byte{'C', 'F', 'C', formatVersion}

// Key is the cache key: a file's path together with the mtime and size
// observed when it was stat'd. Any change to mtime_ns or size produces a
// miss, even if path is unchanged.
type Key struct {
	Path    string
	MTimeNS int64
	Size    int64
}

// Store is the in-memory, process-lifetime view of the feature cache. It
// is safe for concurrent Get calls from Stage A workers, but Put is meant
// to be called only by the single coordinator goroutine that owns it
// (workers return results to the coordinator; they never write the cache
// directly), matching the single-writer rule in the concurrency model.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]features.Features
	dirty   bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{entries: make(map[Key]features.Features)}
}

// Load reads a cache file from disk. A missing file, a bad magic/version,
// a failed checksum, or a corrupt gob payload are all treated the same
// way: an empty Store is returned, with no error — lost work only, never
// incorrect results.
func Load(path string) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		return New()
	}
	return decode(data)
}

func decode(data []byte) *Store {
	const sumSize = 32
	if len(data) < len(magic)+sumSize {
		return New()
	}
	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return New()
	}
	wantSum := data[len(magic) : len(magic)+sumSize]
	payload := data[len(magic)+sumSize:]

	gotSum := blake3.Sum256(payload)
	if !bytes.Equal(gotSum[:], wantSum) {
		return New()
	}

	var entries map[Key]features.Features
	dec := gob.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&entries); err != nil {
		return New()
	}
	if entries == nil {
		entries = make(map[Key]features.Features)
	}
	return &Store{entries: entries}
}

// Get returns the cached Features for key, if present.
func (s *Store) Get(key Key) (features.Features, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.entries[key]
	return f, ok
}

// Put inserts or replaces the Features for key.
func (s *Store) Put(key Key, f features.Features) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = f
	s.dirty = true
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Dirty reports whether any entry has been added since Load/New.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Save writes the cache back to path as a single binary file: a magic and
// format-version header, a BLAKE3 checksum of the gob-encoded entry map,
// then the payload itself. The checksum is an on-disk integrity detail
// only — it has no bearing on the cache's keying contract.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	entries := s.entries
	s.mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entries); err != nil {
		return err
	}
	sum := blake3.Sum256(buf.Bytes())

	var out bytes.Buffer
	out.Write(magic[:])
	out.Write(sum[:])
	out.Write(buf.Bytes())

	return os.WriteFile(path, out.Bytes(), 0o644)
}

// Clear discards every entry in memory without touching disk.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]features.Features)
	s.dirty = true
}

// Package cache stores per-file lint results on disk.
//
// Entries are msgpack files named after a SHA-256 key over the settings that
// affect results, the file path and the file content, so any change to one of
// them is a miss rather than a stale hit.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion must be bumped whenever Payload changes shape.
const schemaVersion uint16 = 1

// App is the directory name used under the user cache directory.
const App = "nextcall"

// Key identifies a cache entry.
type Key [sha256.Size]byte

// NewKey hashes the inputs of a lint run for one file.
func NewKey(fingerprint, path string, content []byte) Key {
	h := sha256.New()
	fmt.Fprintf(h, "schema=%d\x00%s\x00%s\x00", schemaVersion, fingerprint, path)
	h.Write(content)

	var k Key
	copy(k[:], h.Sum(nil))

	return k
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Record is one cached diagnostic with its resolved position.
type Record struct {
	Offset  int
	Line    int
	Column  int
	Check   string
	Message string
}

// Payload is what is stored per file.
type Payload struct {
	Schema    uint16
	Path      string
	HasErrors bool
	Records   []Record
}

// Cache is a directory of payloads. A nil *Cache is valid and never hits.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/nextcall, or ~/.cache/nextcall.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cache: locate home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}

	return filepath.Join(base, App), nil
}

// Open creates dir if needed and returns a cache rooted there.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}

	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, "files", key.String()+".mp")
}

// Put writes payload under key, replacing any previous entry atomically.
func (c *Cache) Put(key Key, payload *Payload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	stored := *payload
	stored.Schema = schemaVersion

	if err := msgpack.NewEncoder(f).Encode(&stored); err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	// Atomic replace
	if err := os.Rename(f.Name(), p); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	return nil
}

// Get reads the payload stored under key. Entries written with another
// schema version are misses.
func (c *Cache) Get(key Key, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("cache: %w", err)
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	if payload.Schema != schemaVersion {
		return false, nil
	}
	*out = payload

	return true, nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "files")); err != nil {
		return fmt.Errorf("cache: clear: %w", err)
	}

	return nil
}

// Package cache persists the parsed host command list between
// sessions. Enumerating commands costs a full batch-mode GDB spawn,
// so command search reuses the cached list as long as the host binary
// has not changed.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
)

// Entry is the cached command list for one host binary
type Entry struct {
	GDBPath    string    `json:"gdb_path"`
	BinModTime time.Time `json:"bin_mod_time"`
	Commands   []string  `json:"commands"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
}

// Cache manages the persistent command-list cache, keyed by host
// binary path
type Cache struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates a cache instance backed by the given file
func New(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]*Entry),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, ferrors.NewCacheError(path, "failed to create cache directory", err)
	}

	if err := c.load(); err != nil {
		return nil, err
	}

	return c, nil
}

// Get retrieves the entry for a host binary path
func (c *Cache) Get(gdbPath string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[gdbPath]
	return entry, found
}

// Set stores an entry and persists it
func (c *Cache) Set(entry *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.GDBPath] = entry
	return c.persist()
}

// Delete removes the entry for a host binary path
func (c *Cache) Delete(gdbPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, gdbPath)
	return c.persist()
}

// Clear removes all entries
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
	return c.persist()
}

// IsValid reports whether the cached entry still matches the host
// binary on disk. A rebuilt or upgraded GDB invalidates its list.
func (c *Cache) IsValid(gdbPath string, version string) bool {
	entry, found := c.Get(gdbPath)
	if !found || entry.Version != version {
		return false
	}

	info, err := os.Stat(gdbPath)
	if err != nil {
		// Relative paths like plain "gdb" cannot be stat'ed; fall back
		// to trusting the entry until `gdb-fzf clean`.
		return !filepath.IsAbs(gdbPath)
	}
	return info.ModTime().Equal(entry.BinModTime)
}

// load reads the cache from disk. A missing file is an empty cache,
// not an error.
func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return ferrors.NewCacheError(c.path, "failed to read cache file", err)
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return ferrors.NewCacheError(c.path, "corrupted cache file", err)
	}

	c.entries = entries
	return nil
}

// persist writes the cache to disk
func (c *Cache) persist() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return ferrors.NewCacheError(c.path, "failed to encode cache", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return ferrors.NewCacheError(c.path, "failed to write cache file", err)
	}
	return nil
}

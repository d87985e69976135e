// Package cache is a small disk cache for API responses, keyed by request
// identity and bounded by a TTL. It exists so repeated conversions of the
// same file, and watch mode in particular, do not burn through the API rate
// limit.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache stores JSON-encoded values under a directory. The zero value is not
// usable; construct with New.
type Cache struct {
	dir string
	ttl time.Duration
}

// New returns a cache rooted at dir with the given entry lifetime. The
// directory is created on first write.
func New(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

// Get loads the entry for key into v. It reports false on a miss: no entry,
// an expired entry, or one that no longer decodes. Expired entries are
// removed on the way out.
func (c *Cache) Get(key string, v any) bool {
	path := c.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if time.Since(info.ModTime()) > c.ttl {
		os.Remove(path)
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// Put stores v under key, replacing any existing entry.
func (c *Cache) Put(key string, v any) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	// Write-then-rename so a crash never leaves a torn entry behind.
	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmp, c.path(key)); err != nil {
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cache dir: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("remove cache entry: %w", err)
		}
	}
	return nil
}

// Len counts the non-expired entries.
func (c *Cache) Len() int {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if info, err := e.Info(); err == nil && time.Since(info.ModTime()) <= c.ttl {
			n++
		}
	}
	return n
}

func (c *Cache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}

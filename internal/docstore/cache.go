package docstore

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache persists scan results as JSON files under a cache directory so
// repeated comparisons against the same repository skip the walk. An
// entry expires after its TTL and is rescanned on next use.
type Cache struct {
	dir string
	ttl time.Duration
}

type cacheEntry struct {
	Root      string      `json:"root"`
	ScannedAt time.Time   `json:"scanned_at"`
	Documents []*Document `json:"documents"`
}

// NewCache creates a cache rooted at dir with the given TTL. A zero or
// negative TTL disables caching.
func NewCache(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

// Load returns the cached documents for root if a fresh entry exists.
func (c *Cache) Load(root string) ([]*Document, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	data, err := os.ReadFile(c.entryPath(root))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if entry.Root != root {
		return nil, false
	}

	if time.Since(entry.ScannedAt) > c.ttl {
		return nil, false
	}

	return entry.Documents, true
}

// Save writes the scan result for root, replacing any previous entry.
// The write goes through a temp file and rename so a crash cannot leave
// a truncated entry behind.
func (c *Cache) Save(root string, docs []*Document) error {
	if c.ttl <= 0 {
		return nil
	}

	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	entry := cacheEntry{
		Root:      root,
		ScannedAt: time.Now(),
		Documents: docs,
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	target := c.entryPath(root)
	tmp, err := os.CreateTemp(c.dir, "scan-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	return nil
}

// Invalidate removes the cached entry for root if one exists.
func (c *Cache) Invalidate(root string) error {
	err := os.Remove(c.entryPath(root))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}
	return nil
}

func (c *Cache) entryPath(root string) string {
	key := sha256.Sum256([]byte(root))
	return filepath.Join(c.dir, fmt.Sprintf("scan-%x.json", key[:8]))
}

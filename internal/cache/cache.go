// Package cache stores per-file analysis results keyed by content hash so
// re-runs on an unchanged tree skip extraction entirely.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/zeebo/blake3"
)

// Cache provides file-based caching of FileAnalysis values.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

type entry struct {
	Hash      string          `json:"hash"`
	Timestamp time.Time       `json:"timestamp"`
	Analysis  json.RawMessage `json:"analysis"`
}

// New creates a cache instance. A disabled cache is a no-op.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
	}, nil
}

// HashBytes computes a BLAKE3 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Get retrieves a cached analysis if the content hash matches and the
// entry has not expired.
func (c *Cache) Get(key, hash string) (*models.FileAnalysis, bool) {
	if !c.enabled {
		return nil, false
	}

	path := c.keyPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}

	if e.Hash != hash {
		return nil, false
	}

	if time.Since(e.Timestamp) > c.ttl {
		os.Remove(path)
		return nil, false
	}

	var fa models.FileAnalysis
	if err := json.Unmarshal(e.Analysis, &fa); err != nil {
		return nil, false
	}
	return &fa, true
}

// Put stores an analysis result with its content hash.
func (c *Cache) Put(key, hash string, fa *models.FileAnalysis) error {
	if !c.enabled {
		return nil
	}

	raw, err := json.Marshal(fa)
	if err != nil {
		return err
	}

	data, err := json.Marshal(entry{
		Hash:      hash,
		Timestamp: time.Now(),
		Analysis:  raw,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(c.keyPath(key), data, 0600)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

// keyPath converts a key to a filesystem path. Keys are hashed so relative
// paths with separators stay inside the cache directory.
func (c *Cache) keyPath(key string) string {
	hash := blake3.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".json")
}

package metadata

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// fileCache stores JSON blobs on the injected filesystem with a TTL based
// on file modification time. Expired or unreadable entries are treated as
// misses.
type fileCache struct {
	fs  afero.Fs
	dir string
	ttl time.Duration
}

func newFileCache(fs afero.Fs, dir string, ttlHours int) *fileCache {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &fileCache{fs: fs, dir: dir, ttl: time.Duration(ttlHours) * time.Hour}
}

func (c *fileCache) get(key string, out any) bool {
	path := c.path(key)
	info, err := c.fs.Stat(path)
	if err != nil {
		return false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return false
	}

	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (c *fileCache) set(key string, v any) error {
	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return afero.WriteFile(c.fs, c.path(key), data, 0o644)
}

func (c *fileCache) clear() error {
	err := c.fs.RemoveAll(c.dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (c *fileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func cacheKey(parts ...string) string {
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

var ErrDirRequired = errors.New("storage directory not provided")

// Store is a small keyed JSON document store. Each key maps to one file
// holding a full JSON document that is rewritten in its entirety on every
// save. Callers inject the filesystem, which keeps tests on an in-memory
// afero.Fs and production on the OS disk.
type Store struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

// New creates a store rooted at dir on the provided filesystem.
func New(fs afero.Fs, dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrDirRequired
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// Load decodes the document stored under key into out. Missing or
// unreadable documents report false rather than an error; a corrupt
// document is treated the same way so callers fall back to an empty
// collection instead of failing.
func (s *Store) Load(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.keyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	if err != nil {
		log.Printf("[storage] read %s: %v", key, err)
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("[storage] decode %s: %v (treating as empty)", key, err)
		return false
	}
	return true
}

// Save writes the document under key, replacing any previous contents via a
// temp file rename.
func (s *Store) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	path := s.keyPath(key)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s temp file: %w", key, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the document under key. Missing documents are not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fs.Remove(s.keyPath(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

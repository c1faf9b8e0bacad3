package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FSStore persists artifacts as plain files under a root directory, one
// file per key. Suitable for single-host deployments and local inspection
// of interview records.
type FSStore struct {
	root string
}

// NewFSStore creates a filesystem-backed store rooted at dir. The directory
// is created if missing.
func NewFSStore(dir string) (*FSStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact: root directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: create root: %w", err)
	}
	return &FSStore{root: dir}, nil
}

// Put writes the artifact bytes to root/key. O_EXCL enforces the write-once
// contract at the filesystem level.
func (s *FSStore) Put(_ context.Context, key string, data []byte) error {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("artifact: create prefix dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("artifact: open %s: %w", key, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("artifact: write %s: %w", key, err)
	}
	return f.Sync()
}

// Get returns the artifact bytes for key or ErrNotFound.
func (s *FSStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("artifact: read %s: %w", key, err)
	}
	return data, nil
}

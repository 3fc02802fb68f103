// Package photostore provides blob storage backends for house photos.
package photostore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"penduduk_backend/internal/feature/residents/usecase"
)

// ErrPhotoNotFound is returned by Delete when the key does not exist.
var ErrPhotoNotFound = errors.New("photo not found")

// FSStore stores photos on the local filesystem under a root directory.
// Keys map to relative file paths; writes go through a temp file and rename
// so a partially written photo is never visible.
type FSStore struct {
	root    string
	baseURL string
}

// Compile-time check that FSStore implements the consumer interface.
var _ usecase.PhotoStore = (*FSStore)(nil)

// NewFSStore creates a filesystem photo store rooted at root, creating the
// directory if needed. baseURL is prepended when resolving public URLs.
func NewFSStore(root, baseURL string) (*FSStore, error) {
	if root == "" {
		root = "./storage/public"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// sanitizeKey rejects keys that could escape the root directory.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}

// Save writes the photo content under key.
func (s *FSStore) Save(ctx context.Context, key string, content []byte, contentType string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	path := filepath.Join(s.root, k)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the photo stored under key.
// Returns ErrPhotoNotFound when there is nothing to delete.
func (s *FSStore) Delete(ctx context.Context, key string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, k)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrPhotoNotFound
		}
		return err
	}
	return nil
}

// URL returns the public URL for a stored key.
func (s *FSStore) URL(key string) string {
	return s.baseURL + "/" + key
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("storage: invalid object key")

// LocalStore writes artifacts into a single directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// path resolves key inside the store directory. Keys are flat names; any
// separator or traversal is rejected rather than cleaned.
func (s *LocalStore) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || filepath.Base(key) != key {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, key), nil
}

// Put writes data through a temp file and rename so readers never see a
// partial artifact. An existing artifact with the same key is replaced.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return dst, nil
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps uploaded objects on the local filesystem under root.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

func (s *LocalStorage) resolve(relPath string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("storage: path %q escapes root", relPath)
	}
	return full, nil
}

// Save writes r to relPath, creating parent directories, and returns the
// number of bytes written.
func (s *LocalStorage) Save(_ context.Context, relPath string, r io.Reader) (int64, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("storage: create dir: %w", err)
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("storage: create file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return 0, fmt.Errorf("storage: write file: %w", err)
	}
	return n, nil
}

// Delete removes relPath; a missing object is not an error.
func (s *LocalStorage) Delete(_ context.Context, relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}

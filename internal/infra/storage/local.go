package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	domainrepo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"
)

// ローカルディスクに保存する（開発用）
type LocalFileStore struct {
	root string
}

// DI
func NewLocalFileStore(root string) (*LocalFileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create proof dir: %w", err)
	}
	return &LocalFileStore{root: root}, nil
}

var _ domainrepo.FileStore = (*LocalFileStore)(nil)

func (s *LocalFileStore) Save(ctx context.Context, key string, contentType string, body io.Reader, size int64) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create proof dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create proof file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, body)
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write proof file: %w", err)
	}
	if size >= 0 && n != size {
		_ = os.Remove(path)
		return fmt.Errorf("write proof file: wrote %d of %d bytes", n, size)
	}
	return ctx.Err()
}

// rootの外に出るキーは拒否
func (s *LocalFileStore) pathFor(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid proof key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalFileStore) Delete(ctx context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove proof file: %w", err)
	}
	return nil
}

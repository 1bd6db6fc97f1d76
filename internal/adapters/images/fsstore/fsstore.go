package fsstore

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"petshop-api/internal/ports/images"
)

// Store implementa images.Store sobre un directorio local configurable.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Save(ctx context.Context, name string, src io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(s.path(name))
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	return f.Close()
}

func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, images.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *Store) Remove(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path aplana el nombre: nada de subdirectorios ni "..".
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

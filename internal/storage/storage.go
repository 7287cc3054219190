package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoStore implements Store on top of an afero filesystem. The server uses a
// MemMapFs so previews never touch the disk; tests can hand in their own.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// Save writes the content of the reader to path, creating parent directories.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, reader)
}

// Delete removes the file at path and its directory if that is left empty.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	if err := s.fs.Remove(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if empty, err := afero.IsEmpty(s.fs, dir); err == nil && empty {
		_ = s.fs.Remove(dir)
	}
	return nil
}

// Open opens the file at path for reading.
func (s *AferoStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}

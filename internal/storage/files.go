package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps uploaded files under a single directory. Stored names are
// uuid-prefixed so concurrent uploads of the same filename never collide.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Save writes the upload to disk and returns the stored path, which is
// what gets persisted on the owning record.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	name := uuid.NewString() + "_" + sanitize(originalName)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove deletes a previously stored file. Paths outside the store
// directory are rejected rather than followed.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	cleaned := filepath.Clean(path)
	if filepath.Dir(cleaned) != filepath.Clean(s.dir) {
		return errors.New("path is outside the upload directory")
	}
	return os.Remove(cleaned)
}

func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) {
		return "file"
	}
	return name
}

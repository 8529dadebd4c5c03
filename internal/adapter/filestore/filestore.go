package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"docassist/internal/domain/entity"
	"docassist/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store keeps raw uploaded documents as files in a single directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the file under the store directory, creating it if needed,
// and returns the absolute path. An existing file is overwritten.
func (s *Store) Save(filename string, content []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	// strip any path components from the client-supplied name
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to save document %s: %w", filename, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// Read returns the raw bytes of a previously saved document.
func (s *Store) Read(filename string) ([]byte, error) {
	path := filepath.Join(s.dir, filepath.Base(filename))
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", entity.ErrDocumentNotFound, filename)
		}
		return nil, fmt.Errorf("failed to read document %s: %w", filename, err)
	}
	return content, nil
}

// List returns the names of all stored documents, sorted.
func (s *Store) List() ([]string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

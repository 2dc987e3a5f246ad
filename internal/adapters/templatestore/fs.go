package templatestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mailroom/internal/domain"
)

// FSStore implements domain.TemplateStore over a directory of .html files.
// Filenames are the lookup keys; the filesystem enforces their uniqueness.
type FSStore struct {
	dir string
}

// New returns an FSStore rooted at dir, creating the directory if it does not exist.
func New(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create template directory %s: %w", dir, err)
	}
	return &FSStore{dir: dir}, nil
}

// List returns the .html filenames present in the template directory, in
// directory-enumeration order. Subdirectories and other extensions are skipped.
func (s *FSStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Resolve returns a handle for the named template, or ErrTemplateNotFound if
// no such file exists. Names with path separators never resolve.
func (s *FSStore) Resolve(name string) (*domain.TemplateRef, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}
	return &domain.TemplateRef{Name: name, Path: path}, nil
}

// Store writes content to filename under the template directory, overwriting
// any existing file of the same name. The filename must end in .html.
func (s *FSStore) Store(filename string, content []byte) error {
	if filename == "" || filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".html") {
		return fmt.Errorf("%w: got %q", domain.ErrInvalidTemplateName, filename)
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write template %s: %w", filename, err)
	}
	return nil
}

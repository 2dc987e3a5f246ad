package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"mailroom/internal/domain"
)

type templateService struct {
	store domain.TemplateStore
}

// NewTemplateService returns a TemplateService backed by the given store.
func NewTemplateService(store domain.TemplateStore) domain.TemplateService {
	return &templateService{store: store}
}

// List returns the available template filenames.
func (s *templateService) List(ctx context.Context) ([]string, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return names, nil
}

// Upload stores the given bytes under filename, overwriting any existing
// template of the same name. Path components in the uploaded filename are
// stripped; the store enforces the .html rule.
func (s *templateService) Upload(ctx context.Context, filename string, content []byte) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return fmt.Errorf("%w: empty filename", domain.ErrInvalidTemplateName)
	}
	return s.store.Store(filepath.Base(filename), content)
}

package domain

import (
	"context"
	"errors"
)

// Sentinel errors for template operations.
var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrInvalidTemplateName = errors.New("only .html template files are allowed")
)

// TemplateRef is a resolved handle to a template file, usable for rendering.
type TemplateRef struct {
	Name string
	Path string
}

// TemplateStore manages the directory of HTML template files (infrastructure port).
type TemplateStore interface {
	List() ([]string, error)
	Resolve(name string) (*TemplateRef, error)
	Store(filename string, content []byte) error
}

// TemplateRenderer renders a resolved template with the given string variables.
// Variables referenced by the template but absent from context render empty.
type TemplateRenderer interface {
	Render(ref *TemplateRef, context map[string]string) (string, error)
}

// TemplateService defines the business logic for listing and uploading templates.
type TemplateService interface {
	List(ctx context.Context) ([]string, error)
	Upload(ctx context.Context, filename string, content []byte) error
}

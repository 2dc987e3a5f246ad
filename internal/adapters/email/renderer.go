package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"mailroom/internal/domain"
)

// fileRenderer implements domain.TemplateRenderer using html/template, which
// contextually escapes HTML-unsafe characters in interpolated values.
type fileRenderer struct{}

// NewTemplateRenderer returns a TemplateRenderer that parses resolved template
// files on each call. Templates are small and uploads may overwrite them at
// any time, so nothing is cached.
func NewTemplateRenderer() domain.TemplateRenderer {
	return &fileRenderer{}
}

// Render executes the resolved template with the given variables. A variable
// referenced by the template but missing from context renders as the empty
// string (map zero value); no strict mode is enforced.
func (r *fileRenderer) Render(ref *domain.TemplateRef, context map[string]string) (string, error) {
	raw, err := os.ReadFile(ref.Path)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", ref.Name, err)
	}
	t, err := template.New(ref.Name).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", ref.Name, err)
	}
	if context == nil {
		context = map[string]string{}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("execute template %s: %w", ref.Name, err)
	}
	return buf.String(), nil
}

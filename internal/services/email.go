package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mailroom/internal/domain"
)

type emailService struct {
	store    domain.TemplateStore
	renderer domain.TemplateRenderer
	mailer   domain.Mailer
}

// NewEmailService returns an EmailService that resolves templates from store,
// renders them with renderer, and dispatches through mailer.
func NewEmailService(store domain.TemplateStore, renderer domain.TemplateRenderer, mailer domain.Mailer) domain.EmailService {
	return &emailService{store: store, renderer: renderer, mailer: mailer}
}

// SendTemplated resolves and renders the named template, then sends the result
// to all recipients in a single message. Any failure fails the whole operation;
// nothing is retried and a lost message is only recoverable by the caller
// repeating the request.
func (s *emailService) SendTemplated(ctx context.Context, email *domain.TemplatedEmail) error {
	if email == nil {
		return fmt.Errorf("templated email is nil")
	}
	ref, err := s.store.Resolve(email.TemplateName)
	if err != nil {
		return fmt.Errorf("failed to resolve template: %w", err)
	}
	html, err := s.renderer.Render(ref, email.Context)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	msg := &domain.OutboundMessage{
		Subject:     email.Subject,
		Recipients:  email.Recipients,
		HTML:        html,
		Attachments: email.Attachments,
	}
	if err := s.mailer.Send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("[EMAIL] Email sent successfully to %s", strings.Join(email.Recipients, ", "))
	return nil
}

// GenerateHTML renders the named template with the given variables without
// sending anything. Returns ErrTemplateNotFound (wrapped) when the template
// is absent.
func (s *emailService) GenerateHTML(ctx context.Context, templateName string, context map[string]string) (string, error) {
	ref, err := s.store.Resolve(templateName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve template: %w", err)
	}
	html, err := s.renderer.Render(ref, context)
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return html, nil
}

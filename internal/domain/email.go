package domain

import "context"

// OutboundMessage is a fully rendered email ready for dispatch. Attachments
// are local file paths; paths that do not exist are skipped by the mailer.
type OutboundMessage struct {
	Subject     string
	Recipients  []string
	HTML        string
	Attachments []string
}

// TemplatedEmail holds the caller-supplied inputs for a template-based send.
type TemplatedEmail struct {
	TemplateName string
	Subject      string
	Recipients   []string
	Context      map[string]string
	Attachments  []string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(msg *OutboundMessage) error
}

// EmailService defines the business logic for rendering and sending emails.
type EmailService interface {
	SendTemplated(ctx context.Context, email *TemplatedEmail) error
	GenerateHTML(ctx context.Context, templateName string, context map[string]string) (string, error)
}

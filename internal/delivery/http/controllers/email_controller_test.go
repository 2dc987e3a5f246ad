package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mailroom/internal/delivery/http/helpers"
	"mailroom/internal/domain"
)

type mockEmailService struct {
	sendErr     error
	generateErr error
	html        string
	sent        []*domain.TemplatedEmail
	generated   []string
}

func (m *mockEmailService) SendTemplated(ctx context.Context, email *domain.TemplatedEmail) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *mockEmailService) GenerateHTML(ctx context.Context, templateName string, context map[string]string) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	m.generated = append(m.generated, templateName)
	return m.html, nil
}

func TestEmailController_SendEmail_Success(t *testing.T) {
	svc := &mockEmailService{}
	ctrl := NewEmailController(testLogger(), svc)

	body := `{"template_name":"welcome.html","subject":"Welcome","recipients":["alice@example.com"],"context":{"name":"Alice"},"attachments":["/tmp/report.pdf"]}`
	req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.SendEmail(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if len(svc.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(svc.sent))
	}
	sent := svc.sent[0]
	if sent.TemplateName != "welcome.html" || sent.Subject != "Welcome" {
		t.Fatalf("unexpected send input: %+v", sent)
	}
	if sent.Context["name"] != "Alice" {
		t.Fatalf("context not forwarded: %+v", sent.Context)
	}
	if !strings.Contains(w.Body.String(), `"status":"success"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestEmailController_SendEmail_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing template_name", `{"subject":"Hi","recipients":["a@b.com"]}`, "template_name is required"},
		{"missing subject", `{"template_name":"x.html","recipients":["a@b.com"]}`, "subject is required"},
		{"missing recipients", `{"template_name":"x.html","subject":"Hi"}`, "recipients is required"},
		{"bad recipient", `{"template_name":"x.html","subject":"Hi","recipients":["not-an-email"]}`, "invalid recipient address"},
		{"unknown field", `{"template_name":"x.html","subject":"Hi","recipients":["a@b.com"],"cc":["x@y.com"]}`, "unknown field"},
		{"non-string context value", `{"template_name":"x.html","subject":"Hi","recipients":["a@b.com"],"context":{"n":1}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEmailService{}
			ctrl := NewEmailController(testLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			ctrl.SendEmail(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
			}
			if len(svc.sent) != 0 {
				t.Fatalf("expected no sends, got %d", len(svc.sent))
			}
			if tt.want != "" && !strings.Contains(w.Body.String(), tt.want) {
				t.Fatalf("expected %q in body: %s", tt.want, w.Body.String())
			}
		})
	}
}

func TestEmailController_SendEmail_ServiceFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"smtp failure", errors.New("failed to send email: smtp auth failed")},
		// missing templates also surface as 500 on the send path
		{"template not found", fmt.Errorf("failed to resolve template: %w", domain.ErrTemplateNotFound)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEmailService{sendErr: tt.err}
			ctrl := NewEmailController(testLogger(), svc)

			body := `{"template_name":"welcome.html","subject":"Welcome","recipients":["alice@example.com"]}`
			req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(body))
			w := httptest.NewRecorder()
			ctrl.SendEmail(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != helpers.ErrCodeInternalError {
				t.Fatalf("expected internal_error, got %+v", resp.Error)
			}
			if !strings.Contains(resp.Error.Message, "Failed to send email") {
				t.Fatalf("unexpected message: %s", resp.Error.Message)
			}
		})
	}
}

func TestEmailController_GenerateHTML_Success(t *testing.T) {
	svc := &mockEmailService{html: "Hello &lt;b&gt;Alice&lt;/b&gt;"}
	ctrl := NewEmailController(testLogger(), svc)

	body := `{"template_name":"welcome.html","context":{"name":"<b>Alice</b>"}}`
	req := httptest.NewRequest(http.MethodPost, "/generate-email-html", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.GenerateHTML(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp struct {
		Data HTMLContentResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.HTMLContent != "Hello &lt;b&gt;Alice&lt;/b&gt;" {
		t.Fatalf("unexpected html_content: %q", resp.Data.HTMLContent)
	}
}

func TestEmailController_GenerateHTML_QueryParamOverridesBody(t *testing.T) {
	svc := &mockEmailService{html: "<p>ok</p>"}
	ctrl := NewEmailController(testLogger(), svc)

	body := `{"template_name":"ignored.html","context":{}}`
	req := httptest.NewRequest(http.MethodPost, "/generate-email-html?template_name=welcome.html", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.GenerateHTML(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if len(svc.generated) != 1 || svc.generated[0] != "welcome.html" {
		t.Fatalf("expected welcome.html to be rendered, got %v", svc.generated)
	}
}

func TestEmailController_GenerateHTML_MissingTemplateName(t *testing.T) {
	svc := &mockEmailService{}
	ctrl := NewEmailController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/generate-email-html", strings.NewReader(`{"context":{}}`))
	w := httptest.NewRecorder()
	ctrl.GenerateHTML(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEmailController_GenerateHTML_NotFound(t *testing.T) {
	svc := &mockEmailService{generateErr: fmt.Errorf("failed to resolve template: %w", domain.ErrTemplateNotFound)}
	ctrl := NewEmailController(testLogger(), svc)

	body := `{"template_name":"missing.html","context":{}}`
	req := httptest.NewRequest(http.MethodPost, "/generate-email-html", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.GenerateHTML(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestEmailController_GenerateHTML_RenderError(t *testing.T) {
	svc := &mockEmailService{generateErr: errors.New("failed to render template: parse error")}
	ctrl := NewEmailController(testLogger(), svc)

	body := `{"template_name":"bad.html","context":{}}`
	req := httptest.NewRequest(http.MethodPost, "/generate-email-html", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.GenerateHTML(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mailroom/internal/delivery/http/helpers"
	"mailroom/internal/domain"
)

type mockTemplateService struct {
	names     []string
	listErr   error
	uploadErr error
	uploaded  map[string][]byte
}

func (m *mockTemplateService) List(ctx context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.names, nil
}

func (m *mockTemplateService) Upload(ctx context.Context, filename string, content []byte) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	if !strings.HasSuffix(filename, ".html") {
		return fmt.Errorf("%w: got %q", domain.ErrInvalidTemplateName, filename)
	}
	if m.uploaded == nil {
		m.uploaded = make(map[string][]byte)
	}
	m.uploaded[filename] = content
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &body, w.FormDataContentType()
}

func TestTemplateController_List_Success(t *testing.T) {
	svc := &mockTemplateService{names: []string{"welcome.html", "reset.html"}}
	ctrl := NewTemplateController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()
	ctrl.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
	if !strings.Contains(w.Body.String(), `"templates":["welcome.html","reset.html"]`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestTemplateController_List_Error(t *testing.T) {
	svc := &mockTemplateService{listErr: errors.New("disk gone")}
	ctrl := NewTemplateController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()
	ctrl.List(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestTemplateController_Upload_Success(t *testing.T) {
	svc := &mockTemplateService{}
	ctrl := NewTemplateController(testLogger(), svc)

	body, contentType := multipartUpload(t, "welcome.html", "<h1>Hello {{.name}}</h1>")
	req := httptest.NewRequest(http.MethodPost, "/upload-template", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	ctrl.Upload(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if string(svc.uploaded["welcome.html"]) != "<h1>Hello {{.name}}</h1>" {
		t.Fatalf("uploaded content mismatch: %q", svc.uploaded["welcome.html"])
	}
	if !strings.Contains(w.Body.String(), "uploaded successfully") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestTemplateController_Upload_RejectsNonHTML(t *testing.T) {
	svc := &mockTemplateService{}
	ctrl := NewTemplateController(testLogger(), svc)

	body, contentType := multipartUpload(t, "x.txt", "not a template")
	req := httptest.NewRequest(http.MethodPost, "/upload-template", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	ctrl.Upload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Only HTML files are allowed") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestTemplateController_Upload_MissingFileField(t *testing.T) {
	svc := &mockTemplateService{}
	ctrl := NewTemplateController(testLogger(), svc)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("other", "value"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload-template", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()
	ctrl.Upload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestTemplateController_Upload_NotMultipart(t *testing.T) {
	svc := &mockTemplateService{}
	ctrl := NewTemplateController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/upload-template", strings.NewReader("plain body"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	ctrl.Upload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

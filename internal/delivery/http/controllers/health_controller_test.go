package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthController_Live(t *testing.T) {
	ctrl := NewHealthController()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	ctrl.Live(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email Generator API is running") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

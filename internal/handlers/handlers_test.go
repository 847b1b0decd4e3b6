package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-insights/captain/internal/models"
	"github.com/storefront-insights/captain/internal/providers"
	"github.com/storefront-insights/captain/internal/vision"
)

type fakeProvider struct {
	response string
	calls    []providers.Config
}

func (f *fakeProvider) AnalyzeImage(ctx context.Context, config providers.Config) (string, error) {
	f.calls = append(f.calls, config)
	return f.response, nil
}

func newTestHandler(provider *fakeProvider) *Handler {
	return New(vision.NewAnalyzer(vision.Enabled{Provider: provider, Name: "fake", Model: "vision-1"}))
}

func uploadRequest(t *testing.T, filename, screen string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if screen != "" {
		if err := writer.WriteField("screen", screen); err != nil {
			t.Fatalf("Failed to write field: %v", err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealthcheck(t *testing.T) {
	routes := newTestHandler(&fakeProvider{}).Routes()
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("Expected 200 OK, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeStoresRun(t *testing.T) {
	provider := &fakeProvider{response: "Cart icon visible? Yes\nOverall Score: 81/100\n**HIGHLIGHTS:**\n- Clear hero"}
	routes := newTestHandler(provider).Routes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, uploadRequest(t, "checkout_mobile.jpg", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var run models.Run
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatalf("Failed to decode run: %v", err)
	}

	if run.ID == "" {
		t.Error("Expected run id")
	}
	if run.Screen != "checkout_mobile" {
		t.Errorf("Expected screen from filename, got %s", run.Screen)
	}
	if run.Analysis.OverallScore != 81 || run.Analysis.Device != vision.DeviceMobile {
		t.Errorf("Unexpected analysis %+v", run.Analysis)
	}
	if run.Provider != "fake" || run.Model != "vision-1" {
		t.Errorf("Unexpected provider/model %s/%s", run.Provider, run.Model)
	}
	if provider.calls[0].MIMEType != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", provider.calls[0].MIMEType)
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+run.ID, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected stored run, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	var runs []models.Run
	if err := json.NewDecoder(rec.Body).Decode(&runs); err != nil {
		t.Fatalf("Failed to decode runs: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run, got %d", len(runs))
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/runs/"+run.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+run.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rec.Code)
	}
}

func TestAnalyzeScreenOverride(t *testing.T) {
	provider := &fakeProvider{response: "Overall: 70/100"}
	h := newTestHandler(provider)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, uploadRequest(t, "upload.png", "homepage"))

	var run models.Run
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatalf("Failed to decode run: %v", err)
	}
	if run.Screen != "homepage" {
		t.Errorf("Expected screen override, got %s", run.Screen)
	}
}

func TestAnalyzeRejections(t *testing.T) {
	tests := []struct {
		name     string
		handler  *Handler
		request  func(t *testing.T) *http.Request
		expected int
	}{
		{
			name:     "non-image file",
			handler:  newTestHandler(&fakeProvider{}),
			request:  func(t *testing.T) *http.Request { return uploadRequest(t, "notes.txt", "") },
			expected: http.StatusBadRequest,
		},
		{
			name:    "missing file",
			handler: newTestHandler(&fakeProvider{}),
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
			},
			expected: http.StatusBadRequest,
		},
		{
			name:     "provider disabled",
			handler:  New(vision.NewAnalyzer(vision.Disabled{Reason: "no key"})),
			request:  func(t *testing.T) *http.Request { return uploadRequest(t, "home.png", "") },
			expected: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.Routes().ServeHTTP(rec, tt.request(t))
			if rec.Code != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, rec.Code)
			}
			if len(tt.handler.runStore.List()) != 0 {
				t.Error("Rejected request should not store a run")
			}
		})
	}
}

func TestDeleteMissingRun(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&fakeProvider{}).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/runs/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lexmx/legal-assistant/internal/config"
	"github.com/lexmx/legal-assistant/internal/core/domain"
	"github.com/lexmx/legal-assistant/internal/core/ports"
)

type ingestFake struct {
	err      error
	lastMeta ports.UploadMeta
}

func (f *ingestFake) Upload(_ context.Context, filename, mimeType string, meta ports.UploadMeta, body io.Reader) (*domain.LegalDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.ReadAll(body); err != nil {
		return nil, err
	}
	f.lastMeta = meta

	now := time.Now().UTC()
	return &domain.LegalDocument{
		ID:          "doc-1",
		Title:       meta.Title,
		Type:        meta.Type,
		Hierarchy:   meta.Hierarchy,
		PrimaryArea: meta.LegalArea,
		Filename:    filename,
		MimeType:    mimeType,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type searchServiceFake struct {
	err      error
	results  []domain.SearchResult
	lastOpts domain.SearchOptions
}

func (f *searchServiceFake) HybridSearch(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastOpts = opts
	return f.results, nil
}

type docsFake struct {
	err error
}

func (f *docsFake) GetByID(context.Context, string) (*domain.LegalDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.LegalDocument{ID: "doc-1", Title: "Ley Federal del Trabajo", Status: domain.StatusReady}, nil
}

func newTestHandler(cfg config.Config, ingest ports.DocumentIngestor, search ports.SearchService, docs ports.DocumentReader) http.Handler {
	return NewRouter(cfg, ingest, search, docs, nil, nil).Handler()
}

func uploadRequest(t *testing.T, fields map[string]string, fileContent string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "ley.txt")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(fileContent)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField(%s) error = %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newTestHandler(config.Config{}, &ingestFake{}, &searchServiceFake{}, &docsFake{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestUploadDocumentSuccess(t *testing.T) {
	ingest := &ingestFake{}
	handler := newTestHandler(config.Config{}, ingest, &searchServiceFake{}, &docsFake{})

	req := uploadRequest(t, map[string]string{
		"title":      "Ley Federal del Trabajo",
		"type":       "ley",
		"hierarchy":  "2",
		"legal_area": "laboral",
	}, "Artículo 1. Texto.")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}

	var docResp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&docResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if docResp["id"] != "doc-1" {
		t.Fatalf("unexpected response: %+v", docResp)
	}
	if ingest.lastMeta.Type != domain.TypeLaw || ingest.lastMeta.Hierarchy != 2 || ingest.lastMeta.LegalArea != "laboral" {
		t.Fatalf("meta not forwarded: %+v", ingest.lastMeta)
	}
}

func TestUploadDocumentMissingFileField(t *testing.T) {
	handler := newTestHandler(config.Config{}, &ingestFake{}, &searchServiceFake{}, &docsFake{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("plain-text"))
	req.Header.Set("Content-Type", "text/plain")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUploadDocumentNonNumericHierarchy(t *testing.T) {
	handler := newTestHandler(config.Config{}, &ingestFake{}, &searchServiceFake{}, &docsFake{})

	req := uploadRequest(t, map[string]string{
		"title":     "Ley",
		"type":      "ley",
		"hierarchy": "segunda",
	}, "texto")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUploadRequestIDEchoedBack(t *testing.T) {
	handler := newTestHandler(config.Config{}, &ingestFake{}, &searchServiceFake{}, &docsFake{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if got := res.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("X-Request-Id = %q, want req-42", got)
	}
}

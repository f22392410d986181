package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{
			ID:         "doc-1-chunk-0",
			DocumentID: "doc-1",
			Content:    "Artículo 1. Texto.",
			Metadata:   domain.ChunkMetadata{Type: "articulo", Article: "1", Hierarchy: 3, LegalArea: "laboral"},
			Embedding:  []float32{0.1, 0.2},
		},
		{
			ID:         "doc-1-chunk-1",
			DocumentID: "doc-1",
			Content:    "Artículo 2. Texto.",
			Metadata:   domain.ChunkMetadata{Type: "articulo", Article: "2", Hierarchy: 3, LegalArea: "laboral", ChunkIndex: 1},
			Embedding:  []float32{0.3, 0.4},
		},
	}
}

func TestIndexChunksEnsuresCollectionOncePerVectorSize(t *testing.T) {
	var ensureCalls, deleteCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/collections/legal":
			atomic.AddInt32(&ensureCalls, 1)
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPost && r.URL.Path == "/collections/legal/points/delete":
			atomic.AddInt32(&deleteCalls, 1)
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut && r.URL.Path == "/collections/legal/points":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	doc := &domain.LegalDocument{ID: "doc-1"}

	if err := client.IndexChunks(context.Background(), doc, testChunks()); err != nil {
		t.Fatalf("first IndexChunks() error = %v", err)
	}
	if err := client.IndexChunks(context.Background(), doc, testChunks()); err != nil {
		t.Fatalf("second IndexChunks() error = %v", err)
	}
	if got := atomic.LoadInt32(&ensureCalls); got != 1 {
		t.Fatalf("expected ensure collection called once, got %d", got)
	}
	if got := atomic.LoadInt32(&deleteCalls); got != 2 {
		t.Fatalf("expected stale points deleted per ingestion, got %d", got)
	}
}

func TestIndexChunksSendsLegalPayload(t *testing.T) {
	var upsert struct {
		Points []struct {
			ID      string         `json:"id"`
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/collections/legal/points" {
			if err := json.NewDecoder(r.Body).Decode(&upsert); err != nil {
				t.Errorf("decode upsert: %v", err)
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	if err := client.IndexChunks(context.Background(), &domain.LegalDocument{ID: "doc-1"}, testChunks()); err != nil {
		t.Fatalf("IndexChunks() error = %v", err)
	}

	if len(upsert.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(upsert.Points))
	}
	payload := upsert.Points[0].Payload
	if payload["chunk_id"] != "doc-1-chunk-0" || payload["article"] != "1" || payload["legal_area"] != "laboral" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if upsert.Points[0].ID == "doc-1-chunk-0" {
		t.Fatalf("expected uuid point id, got raw chunk id")
	}
	if upsert.Points[0].ID != pointID("doc-1-chunk-0") {
		t.Fatalf("point id must be deterministic")
	}
}

func TestSearchMapsPayloadAndFilter(t *testing.T) {
	var searchBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/legal/points/search" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&searchBody); err != nil {
			t.Errorf("decode search: %v", err)
		}
		_, _ = w.Write([]byte(`{"result":[
			{"score":0.92,"payload":{"chunk_id":"doc-1-chunk-0","content":"Artículo 1.","article":"1","hierarchy":3,"legal_area":"laboral","type":"articulo","chunk_index":0}}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	results, err := client.Search(context.Background(), []float32{0.1, 0.2}, domain.SearchOptions{
		TopK:           5,
		LegalArea:      "laboral",
		ScoreThreshold: 0.5,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.ID != "doc-1-chunk-0" || r.Score != 0.92 || r.Metadata.Hierarchy != 3 || r.Metadata.LegalArea != "laboral" {
		t.Fatalf("unexpected result %+v", r)
	}

	if searchBody["score_threshold"] != 0.5 {
		t.Fatalf("score threshold not forwarded: %v", searchBody["score_threshold"])
	}
	if _, ok := searchBody["filter"]; !ok {
		t.Fatalf("legal area filter not forwarded")
	}
}

func TestEnsureCollectionIncludesResponseBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/collections/legal" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	err := client.IndexChunks(context.Background(), &domain.LegalDocument{ID: "doc-1"}, testChunks())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected error to include body, got %v", err)
	}
}

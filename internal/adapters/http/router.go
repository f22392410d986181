// Package httpadapter exposes the ingestion and retrieval API over HTTP.
package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lexmx/legal-assistant/internal/config"
	"github.com/lexmx/legal-assistant/internal/core/domain"
	"github.com/lexmx/legal-assistant/internal/core/ports"
	"github.com/lexmx/legal-assistant/internal/core/usecase"
	"github.com/lexmx/legal-assistant/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	ingest  ports.DocumentIngestor
	search  ports.SearchService
	docs    ports.DocumentReader
	metrics *metrics.HTTPServerMetrics
	logger  *slog.Logger
	cfg     config.Config
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	search ports.SearchService,
	docs ports.DocumentReader,
	serverMetrics *metrics.HTTPServerMetrics,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		ingest:  ingest,
		search:  search,
		docs:    docs,
		metrics: serverMetrics,
		logger:  logger,
		cfg:     cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/search", rt.searchChunks)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = requestValidationMiddleware(handler)
	handler = backpressureMiddleware(handler,
		rt.cfg.APIMaxInFlight,
		time.Duration(rt.cfg.APIQueueWaitMS)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(rt.logger, handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	hierarchy, err := strconv.Atoi(strings.TrimSpace(r.FormValue("hierarchy")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "form field 'hierarchy' must be an integer")
		return
	}

	meta := ports.UploadMeta{
		Title:     strings.TrimSpace(r.FormValue("title")),
		Type:      domain.DocumentType(strings.TrimSpace(r.FormValue("type"))),
		Hierarchy: hierarchy,
		LegalArea: strings.TrimSpace(r.FormValue("legal_area")),
	}

	doc, err := rt.ingest.Upload(r.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), meta, file)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type searchRequest struct {
	Query          string  `json:"query"`
	TopK           int     `json:"top_k"`
	LegalArea      string  `json:"legal_area"`
	ScoreThreshold float64 `json:"score_threshold"`
}

type searchResponse struct {
	Query     string                `json:"query"`
	QueryType domain.QueryType      `json:"query_type"`
	Results   []domain.SearchResult `json:"results"`
	Total     int                   `json:"total"`
}

func (rt *Router) searchChunks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	queryType := usecase.ClassifyQuery(req.Query)
	start := time.Now()
	results, err := rt.search.HybridSearch(r.Context(), req.Query, domain.SearchOptions{
		TopK:           req.TopK,
		QueryType:      queryType,
		LegalArea:      req.LegalArea,
		ScoreThreshold: req.ScoreThreshold,
	})
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordSearch(serviceName, "/v1/search", len(results), time.Since(start))
		rt.metrics.RecordQueryType(serviceName, string(queryType))
	}

	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Query:     req.Query,
		QueryType: queryType,
		Results:   results,
		Total:     len(results),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

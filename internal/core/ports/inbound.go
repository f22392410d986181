package ports

import (
	"context"
	"io"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

// UploadMeta carries the caller-declared classification of an uploaded
// document.
type UploadMeta struct {
	Title     string
	Type      domain.DocumentType
	Hierarchy int
	LegalArea string
}

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, meta UploadMeta, body io.Reader) (*domain.LegalDocument, error)
}

// DocumentProcessor is the inbound contract for asynchronous document
// processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// SearchService is the inbound contract for hybrid retrieval.
type SearchService interface {
	HybridSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.LegalDocument, error)
}

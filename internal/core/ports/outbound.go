package ports

import (
	"context"
	"io"
	"time"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

// DocumentRepository persists and reads legal document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.LegalDocument) error
	GetByID(ctx context.Context, id string) (*domain.LegalDocument, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
}

// DocumentLister pages documents by processing state.
type DocumentLister interface {
	ListByStatus(ctx context.Context, status domain.DocumentStatus, limit int) ([]domain.LegalDocument, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events. Subscribe delivers each
// event to exactly one worker; SubscribeAll fans every event out to every
// subscriber, which the api uses to keep its in-process keyword index warm.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
	SubscribeDocumentIngestedAll(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.LegalDocument) (string, error)
}

// StructureParser detects the hierarchical section arena in raw text.
// An empty result means the document has no usable structure and falls back
// to flow chunking.
type StructureParser interface {
	Parse(text string) []domain.Section
}

// DocumentChunker turns a document into its linked chunk set.
type DocumentChunker interface {
	ChunkDocument(doc *domain.LegalDocument) ([]domain.Chunk, domain.ChunkStats)
}

// Embedder builds vectors for chunk contents and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore indexes embedded chunks and performs semantic search.
type VectorStore interface {
	IndexChunks(ctx context.Context, doc *domain.LegalDocument, chunks []domain.Chunk) error
	Search(ctx context.Context, queryVector []float32, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

// KeywordIndex is the in-process lexical index over chunk contents.
type KeywordIndex interface {
	AddDocument(id, content string, meta domain.ChunkMetadata, updatedAt time.Time)
	Search(query string, opts domain.SearchOptions) []domain.SearchResult
	Clear()
}

// CitationGraph persists directed citation edges between chunks.
type CitationGraph interface {
	SaveCitations(ctx context.Context, doc *domain.LegalDocument, chunks []domain.Chunk) error
}

// ChunkingObserver receives per-document chunking statistics.
type ChunkingObserver interface {
	ObserveChunking(stats domain.ChunkStats)
}

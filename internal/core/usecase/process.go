package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexmx/legal-assistant/internal/core/domain"
	"github.com/lexmx/legal-assistant/internal/core/ports"
)

// ProcessDocumentUseCase drives the ingestion pipeline for one document:
// extract, parse structure, chunk, embed and index in the vector store, the
// keyword index and the citation graph.
type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	extractor ports.TextExtractor
	parser    ports.StructureParser
	chunker   ports.DocumentChunker
	embedder  ports.Embedder
	vectorDB  ports.VectorStore
	keyword   ports.KeywordIndex
	graph     ports.CitationGraph
	observer  ports.ChunkingObserver
	logger    *slog.Logger
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	parser ports.StructureParser,
	chunker ports.DocumentChunker,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	keyword ports.KeywordIndex,
	graph ports.CitationGraph,
	observer ports.ChunkingObserver,
	logger *slog.Logger,
) *ProcessDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessDocumentUseCase{
		repo:      repo,
		extractor: extractor,
		parser:    parser,
		chunker:   chunker,
		embedder:  embedder,
		vectorDB:  vectorDB,
		keyword:   keyword,
		graph:     graph,
		observer:  observer,
		logger:    logger,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.processPipeline(ctx, documentID); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) error {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return err
	}

	text, err := uc.extractText(ctx, doc)
	if err != nil {
		return err
	}
	if text == "" {
		// Empty documents index nothing but are not failures.
		uc.logger.Warn("document produced no text, indexing skipped",
			slog.String("document_id", doc.ID))
		return nil
	}

	doc.FullText = text
	doc.Sections = uc.parser.Parse(text)

	chunks, stats := uc.chunker.ChunkDocument(doc)
	if uc.observer != nil {
		uc.observer.ObserveChunking(stats)
	}
	uc.logger.Info("document chunked",
		slog.String("document_id", doc.ID),
		slog.Bool("structured", doc.HasStructure()),
		slog.Int("chunks", stats.Produced),
		slog.Int("split_sections", stats.SplitSections),
		slog.Int("dropped_fragments", stats.DroppedFragments))
	if len(chunks) == 0 {
		uc.logger.Warn("chunking produced zero chunks, indexing skipped",
			slog.String("document_id", doc.ID))
		return nil
	}

	if err := uc.embedChunks(ctx, chunks); err != nil {
		return err
	}

	return uc.index(ctx, doc, chunks)
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.LegalDocument, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, doc *domain.LegalDocument) (string, error) {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}

func (uc *ProcessDocumentUseCase) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		contents[i] = chunk.Content
	}

	vectors, err := uc.embedder.Embed(ctx, contents)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

func (uc *ProcessDocumentUseCase) index(ctx context.Context, doc *domain.LegalDocument, chunks []domain.Chunk) error {
	if err := uc.vectorDB.IndexChunks(ctx, doc, chunks); err != nil {
		return fmt.Errorf("index chunks in vector db: %w", err)
	}

	for _, chunk := range chunks {
		uc.keyword.AddDocument(chunk.ID, chunk.Content, chunk.Metadata, doc.UpdatedAt)
	}

	if uc.graph != nil {
		if err := uc.graph.SaveCitations(ctx, doc, chunks); err != nil {
			// The graph is a secondary index; retrieval stays correct without
			// it, so a write failure does not fail the document.
			uc.logger.Warn("citation graph update failed",
				slog.String("document_id", doc.ID),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}

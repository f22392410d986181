package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexmx/legal-assistant/internal/core/domain"
	"github.com/lexmx/legal-assistant/internal/core/ports"
)

// rebuildPageSize bounds one ListByStatus page during index rebuild.
const rebuildPageSize = 1000

// RebuildKeywordIndexUseCase repopulates an in-process keyword index from
// already-ingested documents. The worker fills its own index while
// processing; the api process rebuilds at startup and re-indexes on
// ingestion events, since chunking is deterministic and needs no embeddings.
type RebuildKeywordIndexUseCase struct {
	repo      ports.DocumentRepository
	lister    ports.DocumentLister
	extractor ports.TextExtractor
	parser    ports.StructureParser
	chunker   ports.DocumentChunker
	keyword   ports.KeywordIndex
	logger    *slog.Logger
}

func NewRebuildKeywordIndexUseCase(
	repo ports.DocumentRepository,
	lister ports.DocumentLister,
	extractor ports.TextExtractor,
	parser ports.StructureParser,
	chunker ports.DocumentChunker,
	keyword ports.KeywordIndex,
	logger *slog.Logger,
) *RebuildKeywordIndexUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &RebuildKeywordIndexUseCase{
		repo:      repo,
		lister:    lister,
		extractor: extractor,
		parser:    parser,
		chunker:   chunker,
		keyword:   keyword,
		logger:    logger,
	}
}

// Rebuild re-indexes every ready document. A document that fails extraction
// is skipped with a warning; the rest of the corpus still becomes searchable.
func (uc *RebuildKeywordIndexUseCase) Rebuild(ctx context.Context) error {
	docs, err := uc.lister.ListByStatus(ctx, domain.StatusReady, rebuildPageSize)
	if err != nil {
		return fmt.Errorf("list ready documents: %w", err)
	}

	indexed := 0
	for i := range docs {
		if err := uc.indexDocument(ctx, &docs[i]); err != nil {
			uc.logger.Warn("keyword re-index skipped document",
				slog.String("document_id", docs[i].ID),
				slog.String("error", err.Error()))
			continue
		}
		indexed++
	}

	uc.logger.Info("keyword index rebuilt",
		slog.Int("documents", indexed),
		slog.Int("skipped", len(docs)-indexed))
	return nil
}

// IndexByID re-indexes one document, typically on an ingestion event.
func (uc *RebuildKeywordIndexUseCase) IndexByID(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}
	return uc.indexDocument(ctx, doc)
}

func (uc *RebuildKeywordIndexUseCase) indexDocument(ctx context.Context, doc *domain.LegalDocument) error {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return nil
	}

	doc.FullText = text
	doc.Sections = uc.parser.Parse(text)

	chunks, _ := uc.chunker.ChunkDocument(doc)
	for _, chunk := range chunks {
		uc.keyword.AddDocument(chunk.ID, chunk.Content, chunk.Metadata, doc.UpdatedAt)
	}
	return nil
}

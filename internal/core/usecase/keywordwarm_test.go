package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

type listerFake struct {
	docs []domain.LegalDocument
	err  error
}

func (f *listerFake) ListByStatus(context.Context, domain.DocumentStatus, int) ([]domain.LegalDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

// perDocExtractorFake errors only for document ids listed in failFor.
type perDocExtractorFake struct {
	failFor map[string]bool
}

func (f *perDocExtractorFake) Extract(_ context.Context, doc *domain.LegalDocument) (string, error) {
	if f.failFor[doc.ID] {
		return "", errors.New("extract fail")
	}
	return "Artículo 1. Texto.", nil
}

type perDocChunkerFake struct{}

func (perDocChunkerFake) ChunkDocument(doc *domain.LegalDocument) ([]domain.Chunk, domain.ChunkStats) {
	chunk := domain.Chunk{
		ID:         domain.ChunkID(doc.ID, 0),
		DocumentID: doc.ID,
		Content:    doc.FullText,
	}
	return []domain.Chunk{chunk}, domain.ChunkStats{Produced: 1}
}

func TestRebuildIndexesAllReadyDocuments(t *testing.T) {
	lister := &listerFake{docs: []domain.LegalDocument{{ID: "doc-1"}, {ID: "doc-2"}}}
	keyword := &keywordFake{}
	uc := NewRebuildKeywordIndexUseCase(
		&processRepoFake{},
		lister,
		&perDocExtractorFake{},
		&parserFake{},
		perDocChunkerFake{},
		keyword,
		nil,
	)

	if err := uc.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if len(keyword.added) != 2 {
		t.Fatalf("expected 2 chunks indexed, got %d: %v", len(keyword.added), keyword.added)
	}
	if keyword.added[0] != "doc-1-chunk-0" || keyword.added[1] != "doc-2-chunk-0" {
		t.Fatalf("unexpected chunk ids: %v", keyword.added)
	}
}

func TestRebuildSkipsFailingDocuments(t *testing.T) {
	lister := &listerFake{docs: []domain.LegalDocument{{ID: "doc-bad"}, {ID: "doc-ok"}}}
	keyword := &keywordFake{}
	uc := NewRebuildKeywordIndexUseCase(
		&processRepoFake{},
		lister,
		&perDocExtractorFake{failFor: map[string]bool{"doc-bad": true}},
		&parserFake{},
		perDocChunkerFake{},
		keyword,
		nil,
	)

	if err := uc.Rebuild(context.Background()); err != nil {
		t.Fatalf("one broken document must not abort the rebuild: %v", err)
	}
	if len(keyword.added) != 1 || keyword.added[0] != "doc-ok-chunk-0" {
		t.Fatalf("expected only doc-ok indexed, got %v", keyword.added)
	}
}

func TestRebuildFailsWhenListingFails(t *testing.T) {
	uc := NewRebuildKeywordIndexUseCase(
		&processRepoFake{},
		&listerFake{err: errors.New("db down")},
		&perDocExtractorFake{},
		&parserFake{},
		perDocChunkerFake{},
		&keywordFake{},
		nil,
	)

	if err := uc.Rebuild(context.Background()); err == nil {
		t.Fatalf("expected error when listing fails")
	}
}

func TestIndexByIDUsesRepository(t *testing.T) {
	repo := &processRepoFake{doc: &domain.LegalDocument{ID: "doc-7"}}
	keyword := &keywordFake{}
	uc := NewRebuildKeywordIndexUseCase(
		repo,
		&listerFake{},
		&perDocExtractorFake{},
		&parserFake{},
		perDocChunkerFake{},
		keyword,
		nil,
	)

	if err := uc.IndexByID(context.Background(), "doc-7"); err != nil {
		t.Fatalf("IndexByID() error = %v", err)
	}
	if len(keyword.added) != 1 || keyword.added[0] != "doc-7-chunk-0" {
		t.Fatalf("unexpected indexed chunks: %v", keyword.added)
	}
}

package chunking

import (
	"testing"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

func TestLinkCrossReferencesAddsDirectedLink(t *testing.T) {
	chunks := []domain.Chunk{
		{
			ID:         "doc-chunk-0",
			DocumentID: "doc",
			Content:    "Se estará a lo dispuesto por el artículo 2 de esta ley.",
			Metadata:   domain.ChunkMetadata{Article: "1", ChunkIndex: 0},
		},
		{
			ID:         "doc-chunk-1",
			DocumentID: "doc",
			Content:    "Las disposiciones de esta ley son de orden público.",
			Metadata:   domain.ChunkMetadata{Article: "2", ChunkIndex: 1},
		},
	}

	LinkCrossReferences(chunks)

	if len(chunks[0].RelatedChunks) != 1 || chunks[0].RelatedChunks[0] != "doc-chunk-1" {
		t.Fatalf("expected chunk 0 to cite chunk 1, got %v", chunks[0].RelatedChunks)
	}
	if len(chunks[1].RelatedChunks) != 0 {
		t.Fatalf("link must be directional, got %v", chunks[1].RelatedChunks)
	}
}

func TestLinkCrossReferencesMatchesAbbreviatedCitation(t *testing.T) {
	chunks := []domain.Chunk{
		{
			ID:       "doc-chunk-0",
			Content:  "Conforme al art. 47 procede la rescisión sin responsabilidad.",
			Metadata: domain.ChunkMetadata{Article: "10", ChunkIndex: 0},
		},
		{
			ID:       "doc-chunk-1",
			Content:  "Causas de rescisión.",
			Metadata: domain.ChunkMetadata{Article: "47", ChunkIndex: 1},
		},
	}

	LinkCrossReferences(chunks)
	if len(chunks[0].RelatedChunks) != 1 || chunks[0].RelatedChunks[0] != "doc-chunk-1" {
		t.Fatalf("abbreviated citation not linked: %v", chunks[0].RelatedChunks)
	}
}

func TestLinkCrossReferencesNeverLinksSelf(t *testing.T) {
	chunks := []domain.Chunk{
		{
			ID:       "doc-chunk-0",
			Content:  "[Artículo 5] El artículo 5 se cita a sí mismo.",
			Metadata: domain.ChunkMetadata{Article: "5", ChunkIndex: 0},
		},
	}

	LinkCrossReferences(chunks)
	if len(chunks[0].RelatedChunks) != 0 {
		t.Fatalf("self link must not be created, got %v", chunks[0].RelatedChunks)
	}
}

func TestLinkCrossReferencesDeduplicatesRepeatedCitations(t *testing.T) {
	chunks := []domain.Chunk{
		{
			ID:       "doc-chunk-0",
			Content:  "El artículo 9 y de nuevo el artículo 9 se mencionan.",
			Metadata: domain.ChunkMetadata{Article: "1", ChunkIndex: 0},
		},
		{
			ID:       "doc-chunk-1",
			Content:  "Texto.",
			Metadata: domain.ChunkMetadata{Article: "9", ChunkIndex: 1},
		},
	}

	LinkCrossReferences(chunks)
	if len(chunks[0].RelatedChunks) != 1 {
		t.Fatalf("repeated citation must link once, got %v", chunks[0].RelatedChunks)
	}
}

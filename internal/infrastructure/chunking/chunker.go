package chunking

import (
	"github.com/lexmx/legal-assistant/internal/core/domain"
)

// DocumentChunker turns a legal document into its linked chunk set:
// structural chunking per section when the document carries a parsed arena,
// paragraph flow chunking otherwise, then the cross-reference pass.
type DocumentChunker struct {
	cfg        Config
	structural *StructuralChunker
	flow       *FlowChunker
}

func NewDocumentChunker(cfg Config) *DocumentChunker {
	cfg = cfg.normalize()
	return &DocumentChunker{
		cfg:        cfg,
		structural: NewStructuralChunker(cfg),
		flow:       NewFlowChunker(cfg),
	}
}

// ChunkDocument is a pure transform: repeated calls on the same document
// yield identical chunk ids and content. A document with no usable content
// yields zero chunks, not an error.
func (c *DocumentChunker) ChunkDocument(doc *domain.LegalDocument) ([]domain.Chunk, domain.ChunkStats) {
	var chunks []domain.Chunk
	var stats domain.ChunkStats

	if c.cfg.PreserveStructure && doc.HasStructure() {
		for _, sec := range doc.Sections {
			secChunks := c.structural.ChunkSection(doc, sec, len(chunks))
			if len(secChunks) > 1 {
				stats.SplitSections++
			}
			chunks = append(chunks, secChunks...)
		}
	} else {
		var dropped int
		chunks, dropped = c.flow.Chunk(doc, doc.FullText, 0)
		stats.DroppedFragments = dropped
	}

	LinkCrossReferences(chunks)
	stats.Produced = len(chunks)
	return chunks, stats
}

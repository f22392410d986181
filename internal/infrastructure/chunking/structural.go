package chunking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

// StructuralChunker converts one section of a hierarchical document into
// bounded chunks. A section that fits the limit becomes a single chunk;
// oversized sections are segmented into sentences and greedily packed, each
// part re-stamped with the same contextual prefix.
type StructuralChunker struct {
	cfg Config
	seg *Segmenter
}

func NewStructuralChunker(cfg Config) *StructuralChunker {
	cfg = cfg.normalize()
	return &StructuralChunker{
		cfg: cfg,
		seg: NewSegmenter(cfg.MaxChunkSize),
	}
}

// ChunkSection emits the chunks for one section starting at chunk index
// startIndex. Empty content yields zero chunks, not an error.
func (c *StructuralChunker) ChunkSection(doc *domain.LegalDocument, sec domain.Section, startIndex int) []domain.Chunk {
	content := strings.TrimSpace(sec.Content)
	if content == "" {
		return nil
	}

	prefix := sectionPrefix(sec)
	if utf8.RuneCountInString(content) <= c.cfg.MaxChunkSize {
		return []domain.Chunk{c.buildChunk(doc, sec, prefix+content, startIndex, 0, 0)}
	}

	parts := c.packSentences(c.seg.Segment(content))
	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, c.buildChunk(doc, sec, prefix+part, startIndex+i, i+1, len(parts)))
	}
	return chunks
}

// packSentences greedily fills parts up to MaxChunkSize. The segmenter caps
// every sentence at 80% of the limit, so each part takes at least one
// sentence and packing terminates.
func (c *StructuralChunker) packSentences(sentences []string) []string {
	var parts []string
	var b strings.Builder
	length := 0

	for _, sentence := range sentences {
		sentLen := utf8.RuneCountInString(sentence)
		if length > 0 && length+1+sentLen > c.cfg.MaxChunkSize {
			parts = append(parts, b.String())
			b.Reset()
			length = 0
		}
		if length > 0 {
			b.WriteByte(' ')
			length++
		}
		b.WriteString(sentence)
		length += sentLen
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}

	// An undersized trailing part folds into its predecessor when the merge
	// stays within the limit; otherwise it stands as the final remainder.
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		prev := parts[len(parts)-2]
		if utf8.RuneCountInString(last) < c.cfg.MinChunkSize &&
			utf8.RuneCountInString(prev)+1+utf8.RuneCountInString(last) <= c.cfg.MaxChunkSize {
			parts[len(parts)-2] = prev + " " + last
			parts = parts[:len(parts)-1]
		}
	}
	return parts
}

func (c *StructuralChunker) buildChunk(doc *domain.LegalDocument, sec domain.Section, content string, index, part, totalParts int) domain.Chunk {
	return domain.Chunk{
		ID:         domain.ChunkID(doc.ID, index),
		DocumentID: doc.ID,
		Content:    content,
		Metadata: domain.ChunkMetadata{
			Type:       string(sec.Type),
			Article:    articleNumber(sec),
			Title:      sectionTitle(doc, sec),
			Hierarchy:  doc.Hierarchy,
			LegalArea:  doc.PrimaryArea,
			ChunkIndex: index,
			PartNumber: part,
			TotalParts: totalParts,
		},
		Keywords: sectionKeywords(doc, sec),
	}
}

func sectionPrefix(sec domain.Section) string {
	switch {
	case sec.Type == domain.SectionArticle && sec.Number != "":
		return fmt.Sprintf("[Artículo %s] ", sec.Number)
	case sec.Title != "":
		return fmt.Sprintf("[%s] ", sec.Title)
	default:
		return ""
	}
}

func articleNumber(sec domain.Section) string {
	if sec.Type == domain.SectionArticle {
		return sec.Number
	}
	return ""
}

func sectionTitle(doc *domain.LegalDocument, sec domain.Section) string {
	if sec.Title != "" {
		return sec.Title
	}
	return doc.Title
}

func sectionKeywords(doc *domain.LegalDocument, sec domain.Section) []string {
	keywords := make([]string, 0, 4)
	appendKeyword := func(k string) {
		if k == "" {
			return
		}
		for _, existing := range keywords {
			if existing == k {
				return
			}
		}
		keywords = append(keywords, k)
	}

	appendKeyword(string(doc.Type))
	appendKeyword(doc.PrimaryArea)
	appendKeyword(string(sec.Type))
	if sec.Type == domain.SectionArticle && sec.Number != "" {
		appendKeyword("articulo-" + sec.Number)
	}
	return keywords
}

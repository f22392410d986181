package chunking

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

// ellipsisMarker opens overlap text carried over from the previous chunk.
const ellipsisMarker = "… "

var blankLine = regexp.MustCompile(`\n\s*\n`)

// FlowChunker is the paragraph-based fallback for documents without
// structure. Consecutive chunks share a bounded overlap drawn from the
// trailing sentences of the previous chunk so continuity survives the cut.
type FlowChunker struct {
	cfg Config
	seg *Segmenter
}

func NewFlowChunker(cfg Config) *FlowChunker {
	cfg = cfg.normalize()
	return &FlowChunker{
		cfg: cfg,
		seg: NewSegmenter(cfg.MaxChunkSize),
	}
}

// Chunk splits flat text on blank lines and greedily packs paragraphs.
// The returned count reports trailing fragments below the minimum size that
// were dropped; callers surface it as a data-quality signal.
func (c *FlowChunker) Chunk(doc *domain.LegalDocument, text string, startIndex int) ([]domain.Chunk, int) {
	paragraphs := c.splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil, 0
	}

	var chunks []domain.Chunk
	var buffer []string
	bufferLen := 0
	var prevParagraphs []string
	dropped := 0
	index := startIndex

	finalize := func() {
		content := strings.Join(buffer, "\n\n")
		if overlap := c.overlapText(prevParagraphs); overlap != "" {
			content = ellipsisMarker + overlap + "\n\n" + content
		}
		chunks = append(chunks, c.buildChunk(doc, content, index))
		index++
		prevParagraphs = buffer
		buffer = nil
		bufferLen = 0
	}

	for _, paragraph := range paragraphs {
		paraLen := utf8.RuneCountInString(paragraph)
		if bufferLen > 0 && bufferLen+2+paraLen > c.cfg.MaxChunkSize && bufferLen >= c.cfg.MinChunkSize {
			finalize()
		}
		buffer = append(buffer, paragraph)
		if bufferLen > 0 {
			bufferLen += 2
		}
		bufferLen += paraLen
	}

	switch {
	case bufferLen >= c.cfg.MinChunkSize || len(chunks) == 0:
		finalize()
	case len(buffer) > 0:
		dropped++
	}

	return chunks, dropped
}

// splitParagraphs also re-splits any paragraph above MaxChunkSize into
// sentence groups, so a single oversized paragraph cannot produce an
// oversized chunk.
func (c *FlowChunker) splitParagraphs(text string) []string {
	var out []string
	for _, raw := range blankLine.Split(text, -1) {
		paragraph := strings.TrimSpace(raw)
		if paragraph == "" {
			continue
		}
		if utf8.RuneCountInString(paragraph) <= c.cfg.MaxChunkSize {
			out = append(out, paragraph)
			continue
		}
		out = append(out, c.packOversizedParagraph(paragraph)...)
	}
	return out
}

func (c *FlowChunker) packOversizedParagraph(paragraph string) []string {
	var groups []string
	var b strings.Builder
	length := 0
	for _, sentence := range c.seg.Segment(paragraph) {
		sentLen := utf8.RuneCountInString(sentence)
		if length > 0 && length+1+sentLen > c.cfg.MaxChunkSize {
			groups = append(groups, b.String())
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
		groups = append(groups, b.String())
	}
	return groups
}

// overlapText takes trailing sentences of the previous chunk's last
// ContextWindow paragraphs, bounded by OverlapSize runes.
func (c *FlowChunker) overlapText(prevParagraphs []string) string {
	if len(prevParagraphs) == 0 || c.cfg.OverlapSize <= 0 {
		return ""
	}
	window := prevParagraphs
	if len(window) > c.cfg.ContextWindow {
		window = window[len(window)-c.cfg.ContextWindow:]
	}

	sentences := c.seg.Segment(strings.Join(window, " "))
	if len(sentences) == 0 {
		return ""
	}

	// Accumulate complete trailing sentences while they fit the budget.
	overlap := ""
	total := 0
	for i := len(sentences) - 1; i >= 0; i-- {
		sentLen := utf8.RuneCountInString(sentences[i])
		sep := 0
		if total > 0 {
			sep = 1
		}
		if total+sep+sentLen > c.cfg.OverlapSize {
			break
		}
		if overlap == "" {
			overlap = sentences[i]
		} else {
			overlap = sentences[i] + " " + overlap
		}
		total += sep + sentLen
	}
	if overlap != "" {
		return overlap
	}

	// No whole sentence fits: carry the trailing words of the last one.
	return trailingWords(sentences[len(sentences)-1], c.cfg.OverlapSize)
}

func trailingWords(sentence string, budget int) string {
	words := strings.Fields(sentence)
	overlap := ""
	total := 0
	for i := len(words) - 1; i >= 0; i-- {
		wordLen := utf8.RuneCountInString(words[i])
		sep := 0
		if total > 0 {
			sep = 1
		}
		if total+sep+wordLen > budget {
			break
		}
		if overlap == "" {
			overlap = words[i]
		} else {
			overlap = words[i] + " " + overlap
		}
		total += sep + wordLen
	}
	return overlap
}

func (c *FlowChunker) buildChunk(doc *domain.LegalDocument, content string, index int) domain.Chunk {
	keywords := make([]string, 0, 2)
	if doc.Type != "" {
		keywords = append(keywords, string(doc.Type))
	}
	if doc.PrimaryArea != "" && doc.PrimaryArea != string(doc.Type) {
		keywords = append(keywords, doc.PrimaryArea)
	}
	return domain.Chunk{
		ID:         domain.ChunkID(doc.ID, index),
		DocumentID: doc.ID,
		Content:    content,
		Metadata: domain.ChunkMetadata{
			Type:       "flow",
			Title:      doc.Title,
			Hierarchy:  doc.Hierarchy,
			LegalArea:  doc.PrimaryArea,
			ChunkIndex: index,
		},
		Keywords: keywords,
	}
}

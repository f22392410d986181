package domain

import "fmt"

// ChunkMetadata describes where a chunk came from and how to rank it.
type ChunkMetadata struct {
	Type       string `json:"type"`
	Article    string `json:"article,omitempty"`
	Title      string `json:"title,omitempty"`
	Hierarchy  int    `json:"hierarchy"`
	LegalArea  string `json:"legal_area,omitempty"`
	ChunkIndex int    `json:"chunk_index"`
	PartNumber int    `json:"part_number,omitempty"`
	TotalParts int    `json:"total_parts,omitempty"`
}

// Chunk is a bounded unit of document text prepared for indexing. Immutable
// after the linking pass; re-ingesting a document discards and rebuilds its
// whole chunk set.
type Chunk struct {
	ID            string        `json:"id"`
	DocumentID    string        `json:"document_id"`
	Content       string        `json:"content"`
	Metadata      ChunkMetadata `json:"metadata"`
	Keywords      []string      `json:"keywords,omitempty"`
	RelatedChunks []string      `json:"related_chunks,omitempty"`
	Embedding     []float32     `json:"embedding,omitempty"`
}

// ChunkID builds the deterministic chunk id for a document and sequence index.
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s-chunk-%d", documentID, index)
}

// ChunkStats summarizes one chunking pass for logging and metrics.
type ChunkStats struct {
	Produced         int
	SplitSections    int
	DroppedFragments int
}

// Package memory is an in-process vector store used for development and
// tests when no Qdrant instance is configured. Cosine similarity over a
// mutex-guarded map; not meant for large corpora.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

type storedPoint struct {
	chunk  domain.Chunk
	vector []float32
}

type Store struct {
	mu     sync.RWMutex
	points map[string]storedPoint
}

func NewStore() *Store {
	return &Store{points: make(map[string]storedPoint)}
}

func (s *Store) IndexChunks(_ context.Context, doc *domain.LegalDocument, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-ingestion replaces the whole document.
	for id, p := range s.points {
		if p.chunk.DocumentID == doc.ID {
			delete(s.points, id)
		}
	}
	for _, chunk := range chunks {
		s.points[chunk.ID] = storedPoint{chunk: chunk, vector: chunk.Embedding}
	}
	return nil
}

func (s *Store) Search(_ context.Context, queryVector []float32, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if len(queryVector) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.SearchResult, 0, len(s.points))
	for _, p := range s.points {
		if opts.LegalArea != "" && p.chunk.Metadata.LegalArea != opts.LegalArea {
			continue
		}
		score := cosine(queryVector, p.vector)
		if opts.ScoreThreshold > 0 && score < opts.ScoreThreshold {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:       p.chunk.ID,
			Content:  p.chunk.Content,
			Score:    score,
			Metadata: p.chunk.Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	limit := opts.TopK
	if limit <= 0 {
		limit = 10
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

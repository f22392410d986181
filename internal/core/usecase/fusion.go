package usecase

import (
	"sort"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

const rrfK = 60

type fusedCandidate struct {
	result domain.SearchResult
	score  float64
}

// fuseWeightedRRF merges a keyword list and a semantic list with weighted
// reciprocal rank fusion: each appearance contributes weight/(k+rank+1), so
// original scores only matter through ordering and the two retrievers stay
// comparable across score scales.
func fuseWeightedRRF(keyword, semantic []domain.SearchResult, keywordWeight, semanticWeight float64) []domain.SearchResult {
	acc := make(map[string]fusedCandidate, len(keyword)+len(semantic))
	addList := func(results []domain.SearchResult, weight float64) {
		if weight <= 0 {
			return
		}
		for rank, result := range results {
			candidate := acc[result.ID]
			candidate.result = preferRicherResult(candidate.result, result)
			candidate.score += weight / float64(rrfK+rank+1)
			acc[result.ID] = candidate
		}
	}

	addList(keyword, keywordWeight)
	addList(semantic, semanticWeight)

	out := make([]domain.SearchResult, 0, len(acc))
	for _, c := range acc {
		result := c.result
		result.Score = c.score
		out = append(out, result)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// fusionWeights shifts the semantic/keyword balance by query type. Citation
// queries invert the default toward the keyword side; conceptual and
// comparative phrasing leans semantic.
func fusionWeights(queryType domain.QueryType, semanticWeight, keywordWeight float64) (keyword, semantic float64) {
	switch queryType {
	case domain.QueryCitation:
		return semanticWeight, keywordWeight
	case domain.QueryConceptual, domain.QueryComparative:
		return 0.2, 0.8
	default:
		return keywordWeight, semanticWeight
	}
}

func trimResults(results []domain.SearchResult, limit int) []domain.SearchResult {
	if limit <= 0 || len(results) <= limit {
		return results
	}
	return results[:limit]
}

func preferRicherResult(current, candidate domain.SearchResult) domain.SearchResult {
	if current.ID == "" {
		return candidate
	}
	if current.Content == "" && candidate.Content != "" {
		current.Content = candidate.Content
	}
	if current.Metadata == (domain.ChunkMetadata{}) && candidate.Metadata != (domain.ChunkMetadata{}) {
		current.Metadata = candidate.Metadata
	}
	return current
}

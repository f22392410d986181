package usecase

import (
	"regexp"
	"sort"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

// legalTermPatterns are the structural markers of Mexican legal drafting. A
// pattern counts toward the rerank boost only when it appears in both the
// query and the candidate content.
var legalTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)art(?:ículo|iculo|\.)`),
	regexp.MustCompile(`(?i)fracci(?:ón|on)|fracc?\.`),
	regexp.MustCompile(`(?i)inciso|inc\.`),
	regexp.MustCompile(`(?i)p(?:á|a)rrafo|párr\.`),
}

var numberPattern = regexp.MustCompile(`\d+`)

// rerankLegal applies domain-aware multiplicative boosts on top of the fused
// ordering. Boosts compound; ties break on id so the ordering stays
// deterministic.
func rerankLegal(query string, queryType domain.QueryType, legalArea string, results []domain.SearchResult) []domain.SearchResult {
	if len(results) == 0 {
		return results
	}

	queryNumbers := numberPattern.FindAllString(query, -1)

	out := make([]domain.SearchResult, len(results))
	copy(out, results)
	for i := range out {
		boost := 1.0
		meta := out[i].Metadata

		if legalArea != "" && meta.LegalArea == legalArea {
			boost *= 1.2
		}
		if meta.Hierarchy == domain.HierarchyConstitutional {
			boost *= 1.3
		}
		if queryType == domain.QueryCitation && meta.Article != "" && containsNumber(queryNumbers, meta.Article) {
			boost *= 1.5
		}
		if shared := sharedLegalTerms(query, out[i].Content); shared > 0 {
			boost *= 1 + 0.1*float64(shared)
		}

		out[i].Score *= boost
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func sharedLegalTerms(query, content string) int {
	shared := 0
	for _, pattern := range legalTermPatterns {
		if pattern.MatchString(query) && pattern.MatchString(content) {
			shared++
		}
	}
	return shared
}

func containsNumber(numbers []string, article string) bool {
	for _, n := range numbers {
		if n == article {
			return true
		}
	}
	return false
}

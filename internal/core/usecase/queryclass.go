package usecase

import (
	"regexp"
	"strings"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

var articleQueryPattern = regexp.MustCompile(`(?i)art(?:ículo|iculo|\.)\s*\d+`)

var conceptualMarkers = []string{
	"qué es", "que es", "qué significa", "que significa",
	"definición", "definicion", "concepto de", "en qué consiste", "en que consiste",
}

var comparativeMarkers = []string{
	"diferencia", "diferencias", " versus ", " vs ", " vs.",
	"comparación", "comparacion", "comparar", "frente a",
}

// ClassifyQuery buckets a query so fusion weights and reranking can adapt.
// Citation detection wins over the phrase markers: a query naming a concrete
// article is answered by exact lexical matching regardless of how it is
// phrased.
func ClassifyQuery(query string) domain.QueryType {
	if articleQueryPattern.MatchString(query) {
		return domain.QueryCitation
	}

	lower := strings.ToLower(query)
	for _, marker := range comparativeMarkers {
		if strings.Contains(lower, marker) {
			return domain.QueryComparative
		}
	}
	for _, marker := range conceptualMarkers {
		if strings.Contains(lower, marker) {
			return domain.QueryConceptual
		}
	}
	return domain.QueryGeneral
}

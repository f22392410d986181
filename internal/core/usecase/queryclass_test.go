package usecase

import (
	"testing"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

func TestClassifyQuery(t *testing.T) {
	cases := []struct {
		query string
		want  domain.QueryType
	}{
		{"artículo 123 de la constitución", domain.QueryCitation},
		{"Articulo 47 LFT", domain.QueryCitation},
		{"art. 14 constitucional", domain.QueryCitation},
		{"qué es el amparo directo", domain.QueryConceptual},
		{"definición de persona moral", domain.QueryConceptual},
		{"diferencia entre dolo y culpa", domain.QueryComparative},
		{"amparo directo versus amparo indirecto", domain.QueryComparative},
		{"requisitos para constituir una sociedad", domain.QueryGeneral},
		{"", domain.QueryGeneral},
	}
	for _, tc := range cases {
		if got := ClassifyQuery(tc.query); got != tc.want {
			t.Fatalf("ClassifyQuery(%q) = %s, want %s", tc.query, got, tc.want)
		}
	}
}

func TestClassifyQueryCitationWinsOverMarkers(t *testing.T) {
	if got := ClassifyQuery("qué es el artículo 123"); got != domain.QueryCitation {
		t.Fatalf("expected citation to win, got %s", got)
	}
}

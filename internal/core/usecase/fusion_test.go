package usecase

import (
	"testing"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

func TestFuseBothListsBeatSingleList(t *testing.T) {
	keyword := []domain.SearchResult{
		{ID: "both", Content: "Artículo 123", Score: 12.5},
		{ID: "kw-only", Content: "Artículo 47", Score: 11.0},
	}
	semantic := []domain.SearchResult{
		{ID: "both", Content: "Artículo 123", Score: 0.91},
		{ID: "sem-only", Content: "Artículo 5", Score: 0.88},
	}

	fused := fuseWeightedRRF(keyword, semantic, 0.5, 0.5)
	if len(fused) != 3 {
		t.Fatalf("expected 3 fused results, got %d", len(fused))
	}
	if fused[0].ID != "both" {
		t.Fatalf("expected chunk present in both lists first, got %s", fused[0].ID)
	}
}

func TestFuseScoreIsRankBased(t *testing.T) {
	keyword := []domain.SearchResult{{ID: "a", Score: 9999.0}}
	fused := fuseWeightedRRF(keyword, nil, 1.0, 1.0)
	if len(fused) != 1 {
		t.Fatalf("expected 1 result, got %d", len(fused))
	}
	want := 1.0 / float64(rrfK+1)
	if fused[0].Score != want {
		t.Fatalf("expected rank-based score %f, got %f", want, fused[0].Score)
	}
}

func TestFuseWeightsFavorHeavierList(t *testing.T) {
	keyword := []domain.SearchResult{{ID: "kw", Score: 1.0}}
	semantic := []domain.SearchResult{{ID: "sem", Score: 1.0}}

	fused := fuseWeightedRRF(keyword, semantic, 0.3, 0.7)
	if fused[0].ID != "sem" {
		t.Fatalf("expected semantic result first under 0.7 weight, got %s", fused[0].ID)
	}

	fused = fuseWeightedRRF(keyword, semantic, 0.7, 0.3)
	if fused[0].ID != "kw" {
		t.Fatalf("expected keyword result first under 0.7 weight, got %s", fused[0].ID)
	}
}

func TestFuseTieBreaksOnID(t *testing.T) {
	keyword := []domain.SearchResult{{ID: "b", Score: 1.0}}
	semantic := []domain.SearchResult{{ID: "a", Score: 1.0}}

	fused := fuseWeightedRRF(keyword, semantic, 0.5, 0.5)
	if fused[0].ID != "a" || fused[1].ID != "b" {
		t.Fatalf("expected deterministic id tiebreak, got %s, %s", fused[0].ID, fused[1].ID)
	}
}

func TestFuseKeepsRicherMetadata(t *testing.T) {
	keyword := []domain.SearchResult{{ID: "x", Content: ""}}
	semantic := []domain.SearchResult{{ID: "x", Content: "texto", Metadata: domain.ChunkMetadata{Article: "9"}}}

	fused := fuseWeightedRRF(keyword, semantic, 0.5, 0.5)
	if fused[0].Content != "texto" || fused[0].Metadata.Article != "9" {
		t.Fatalf("expected richer fields to survive fusion, got %+v", fused[0])
	}
}

func TestFusionWeightsByQueryType(t *testing.T) {
	cases := []struct {
		queryType   domain.QueryType
		wantKeyword float64
		wantSem     float64
	}{
		{domain.QueryGeneral, 0.3, 0.7},
		{domain.QueryCitation, 0.7, 0.3},
		{domain.QueryConceptual, 0.2, 0.8},
		{domain.QueryComparative, 0.2, 0.8},
	}
	for _, tc := range cases {
		kw, sem := fusionWeights(tc.queryType, 0.7, 0.3)
		if kw != tc.wantKeyword || sem != tc.wantSem {
			t.Fatalf("%s: expected weights (%f, %f), got (%f, %f)",
				tc.queryType, tc.wantKeyword, tc.wantSem, kw, sem)
		}
	}
}

func TestTrimResults(t *testing.T) {
	results := []domain.SearchResult{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if got := trimResults(results, 2); len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got := trimResults(results, 0); len(got) != 3 {
		t.Fatalf("expected no trim for limit 0, got %d", len(got))
	}
}

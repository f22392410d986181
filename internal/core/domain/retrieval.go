package domain

// QueryType steers fusion weights and reranking heuristics.
type QueryType string

const (
	QueryCitation    QueryType = "citation"
	QueryConceptual  QueryType = "conceptual"
	QueryComparative QueryType = "comparative"
	QueryGeneral     QueryType = "general"
)

type SearchFilter struct {
	LegalArea string
}

type SearchOptions struct {
	TopK           int
	QueryType      QueryType
	LegalArea      string
	ScoreThreshold float64
}

// SearchResult is one ranked chunk returned by keyword, vector or hybrid
// search. Scores from different engines live on incompatible scales and are
// only comparable after rank fusion.
type SearchResult struct {
	ID       string        `json:"id"`
	Content  string        `json:"content"`
	Score    float64       `json:"score"`
	Metadata ChunkMetadata `json:"metadata"`
}

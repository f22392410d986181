package usecase

import (
	"context"
	"log/slog"

	"github.com/lexmx/legal-assistant/internal/core/domain"
	"github.com/lexmx/legal-assistant/internal/core/ports"
)

type SearchConfig struct {
	SemanticWeight float64
	KeywordWeight  float64
	TopK           int
	CandidateTopK  int
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		SemanticWeight: 0.7,
		KeywordWeight:  0.3,
		TopK:           10,
		CandidateTopK:  30,
	}
}

func (c SearchConfig) normalize() SearchConfig {
	if c.SemanticWeight <= 0 && c.KeywordWeight <= 0 {
		c.SemanticWeight = 0.7
		c.KeywordWeight = 0.3
	}
	if c.TopK <= 0 {
		c.TopK = 10
	}
	if c.CandidateTopK < c.TopK {
		c.CandidateTopK = c.TopK * 3
	}
	return c
}

// HybridSearchUseCase runs keyword and semantic retrieval in tandem, fuses
// both lists with weighted RRF and reranks with legal-domain boosts.
type HybridSearchUseCase struct {
	keyword  ports.KeywordIndex
	embedder ports.Embedder
	vectorDB ports.VectorStore
	cfg      SearchConfig
	logger   *slog.Logger
}

func NewHybridSearchUseCase(
	keyword ports.KeywordIndex,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	cfg SearchConfig,
	logger *slog.Logger,
) *HybridSearchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &HybridSearchUseCase{
		keyword:  keyword,
		embedder: embedder,
		vectorDB: vectorDB,
		cfg:      cfg.normalize(),
		logger:   logger,
	}
}

// HybridSearch embeds the query and delegates to SearchWithVector. A failing
// embedder degrades to keyword-only retrieval instead of failing the request.
func (uc *HybridSearchUseCase) HybridSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	var queryVector []float32
	if uc.embedder != nil {
		vector, err := uc.embedder.EmbedQuery(ctx, query)
		if err != nil {
			uc.logger.Warn("query embedding failed, degrading to keyword-only search",
				slog.String("error", err.Error()))
		} else {
			queryVector = vector
		}
	}
	return uc.SearchWithVector(ctx, query, queryVector, opts)
}

// SearchWithVector runs hybrid retrieval with a caller-supplied query vector.
// A nil vector skips the semantic leg.
func (uc *HybridSearchUseCase) SearchWithVector(ctx context.Context, query string, queryVector []float32, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	queryType := opts.QueryType
	if queryType == "" {
		queryType = ClassifyQuery(query)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = uc.cfg.TopK
	}

	candidateOpts := opts
	candidateOpts.TopK = uc.cfg.CandidateTopK
	if candidateOpts.TopK < topK {
		candidateOpts.TopK = topK
	}

	keywordResults := uc.keyword.Search(query, candidateOpts)

	var semanticResults []domain.SearchResult
	if queryVector != nil && uc.vectorDB != nil {
		results, err := uc.vectorDB.Search(ctx, queryVector, candidateOpts)
		if err != nil {
			uc.logger.Warn("vector search failed, degrading to keyword-only search",
				slog.String("error", err.Error()))
		} else {
			semanticResults = results
		}
	}

	keywordWeight, semanticWeight := fusionWeights(queryType, uc.cfg.SemanticWeight, uc.cfg.KeywordWeight)
	fused := fuseWeightedRRF(keywordResults, semanticResults, keywordWeight, semanticWeight)
	reranked := rerankLegal(query, queryType, opts.LegalArea, fused)

	if opts.ScoreThreshold > 0 {
		filtered := reranked[:0]
		for _, result := range reranked {
			if result.Score >= opts.ScoreThreshold {
				filtered = append(filtered, result)
			}
		}
		reranked = filtered
	}

	return trimResults(reranked, topK), nil
}

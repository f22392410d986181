package index

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

// BM25 parameters tuned so long legal documents are not over-penalized
// relative to short ones.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// BoostConfig holds the multiplicative ranking boosts. Each contribution
// compounds independently.
type BoostConfig struct {
	// ExactMatch multiplies the score when the full tokenized query appears
	// as a contiguous subsequence of the document.
	ExactMatch float64
	// Hierarchy weights (8 - hierarchy), favoring higher-authority sources.
	Hierarchy float64
	// Recency weights an exponential decay over days since last update.
	Recency float64
}

func DefaultBoosts() BoostConfig {
	return BoostConfig{
		ExactMatch: 1.5,
		Hierarchy:  0.05,
		Recency:    0.1,
	}
}

type indexedDocument struct {
	id        string
	content   string
	tokens    []string
	termFreq  map[string]int
	meta      domain.ChunkMetadata
	updatedAt time.Time
}

// BM25Engine is an in-memory inverted keyword index. The corpus index is
// shared mutable state: a RWMutex serializes AddDocument/Clear against
// concurrent Search calls.
type BM25Engine struct {
	boosts BoostConfig
	now    func() time.Time

	mu          sync.RWMutex
	docs        map[string]*indexedDocument
	order       []string
	docFreq     map[string]int
	totalTokens int
}

func NewBM25Engine(boosts BoostConfig) *BM25Engine {
	if boosts == (BoostConfig{}) {
		boosts = DefaultBoosts()
	}
	return &BM25Engine{
		boosts:  boosts,
		now:     time.Now,
		docs:    make(map[string]*indexedDocument),
		docFreq: make(map[string]int),
	}
}

// AddDocument indexes one chunk. Re-adding an existing id replaces the
// previous entry, which is how re-ingestion rebuilds the corpus.
func (e *BM25Engine) AddDocument(id, content string, meta domain.ChunkMetadata, updatedAt time.Time) {
	tokens := Tokenize(content)
	termFreq := make(map[string]int, len(tokens))
	for _, token := range tokens {
		termFreq[token]++
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if old, exists := e.docs[id]; exists {
		e.removeLocked(old)
	} else {
		e.order = append(e.order, id)
	}

	doc := &indexedDocument{
		id:        id,
		content:   content,
		tokens:    tokens,
		termFreq:  termFreq,
		meta:      meta,
		updatedAt: updatedAt,
	}
	e.docs[id] = doc
	e.totalTokens += len(tokens)
	for term := range termFreq {
		e.docFreq[term]++
	}
}

// Search scores every indexed chunk against the query and returns positive
// scores sorted descending, truncated to TopK. An empty index or a query
// with no recognized terms yields an empty result, never an error.
func (e *BM25Engine) Search(query string, opts domain.SearchOptions) []domain.SearchResult {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	total := len(e.docs)
	if total == 0 {
		return nil
	}
	avgLen := float64(e.totalTokens) / float64(total)
	if avgLen <= 0 {
		avgLen = 1
	}
	now := e.now()

	results := make([]domain.SearchResult, 0, total)
	for _, id := range e.order {
		doc := e.docs[id]
		if opts.LegalArea != "" && doc.meta.LegalArea != opts.LegalArea {
			continue
		}

		score := 0.0
		for _, term := range queryTokens {
			tf := doc.termFreq[term]
			if tf == 0 {
				continue
			}
			df := e.docFreq[term]
			// Smoothed idf: the raw log ratio goes non-positive once a term
			// appears in most of a small corpus, which would zero out exact
			// article-number hits on two-document sets.
			idf := math.Log(1 + (float64(total)-float64(df)+0.5)/(float64(df)+0.5))
			docLen := float64(len(doc.tokens))
			norm := bm25K1 * (1 - bm25B + bm25B*docLen/avgLen)
			score += idf * (float64(tf) * (bm25K1 + 1)) / (float64(tf) + norm)
		}
		if score <= 0 {
			continue
		}

		score *= e.boostFor(doc, queryTokens, now)
		if score <= 0 {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:       doc.id,
			Content:  doc.content,
			Score:    score,
			Metadata: doc.meta,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	topK := opts.TopK
	if topK <= 0 {
		topK = 10
	}
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// Clear resets all index state.
func (e *BM25Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs = make(map[string]*indexedDocument)
	e.order = nil
	e.docFreq = make(map[string]int)
	e.totalTokens = 0
}

// Size reports the number of indexed chunks.
func (e *BM25Engine) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.docs)
}

func (e *BM25Engine) boostFor(doc *indexedDocument, queryTokens []string, now time.Time) float64 {
	boost := 1.0
	if e.boosts.ExactMatch > 0 && containsContiguous(doc.tokens, queryTokens) {
		boost *= e.boosts.ExactMatch
	}
	if e.boosts.Hierarchy > 0 && doc.meta.Hierarchy >= domain.HierarchyConstitutional && doc.meta.Hierarchy <= domain.HierarchyLowest {
		boost *= 1 + e.boosts.Hierarchy*float64(8-doc.meta.Hierarchy)
	}
	if e.boosts.Recency > 0 && !doc.updatedAt.IsZero() {
		days := now.Sub(doc.updatedAt).Hours() / 24
		if days < 0 {
			days = 0
		}
		boost *= 1 + e.boosts.Recency*math.Exp(-days/365)
	}
	return boost
}

func (e *BM25Engine) removeLocked(doc *indexedDocument) {
	e.totalTokens -= len(doc.tokens)
	for term := range doc.termFreq {
		if e.docFreq[term] <= 1 {
			delete(e.docFreq, term)
		} else {
			e.docFreq[term]--
		}
	}
	delete(e.docs, doc.id)
}

func containsContiguous(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j, term := range phrase {
			if tokens[i+j] != term {
				continue outer
			}
		}
		return true
	}
	return false
}

// Tokenize lowercases, keeps letters (accents included) and digits, drops
// tokens of length <= 2 and Spanish legal stop words.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		token := b.String()
		b.Reset()
		if utf8.RuneCountInString(token) <= 2 || isStopWord(token) {
			return
		}
		out = append(out, token)
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()
	return out
}

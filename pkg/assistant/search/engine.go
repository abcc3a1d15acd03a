package search

import (
	"context"
	"fmt"
	"log"

	"opx-assistant-be/pkg/embedding"
	"opx-assistant-be/pkg/store"
)

// candidateFetchLimit bounds how many stored vectors the in-process
// ranking rung will pull.
const candidateFetchLimit = 100

// VectorStore is the persistence boundary of the engine. SearchNative
// uses the store's own nearest-neighbor operator; an error from it means
// "operator unavailable", not "no results", and triggers the next rung.
type VectorStore interface {
	SearchNative(ctx context.Context, query []float32, entityType string, threshold float64, limit int) ([]*store.SimilarityResult, error)
	FetchCandidates(ctx context.Context, entityType string, limit int) ([]*store.StoredVector, error)
}

// Lister is the structured-listing fallback used when no vector
// infrastructure is reachable at all.
type Lister interface {
	ListRecords(ctx context.Context, entity string, limit int) ([]map[string]interface{}, error)
}

// Result is what one search run returns.
type Result struct {
	Results  []*store.SimilarityResult
	Summary  string
	Unranked []map[string]interface{}
}

// Engine ranks stored vectors against a query by cosine similarity,
// degrading through a three-rung ladder: native operator, in-process
// ranking, unranked structured listing.
type Engine struct {
	embedder embedding.Provider
	vectors  VectorStore
	lister   Lister
	logger   *log.Logger
}

func NewEngine(embedder embedding.Provider, vectors VectorStore, lister Lister, logger *log.Logger) *Engine {
	return &Engine{
		embedder: embedder,
		vectors:  vectors,
		lister:   lister,
		logger:   logger,
	}
}

// Search embeds the query and walks the ladder. entityType may be empty
// to search across all vectorized records.
func (e *Engine) Search(ctx context.Context, query string, entityType string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = 10
	}

	queryVector, err := e.embedder.Generate(ctx, query)
	if err != nil {
		// Without a query vector neither vector rung can run.
		e.logf("[SEARCH] embedding failed, using structured listing: %v", err)
		return e.listFallback(ctx, entityType, limit)
	}

	// Rung 1: the store's native nearest-neighbor operator.
	if e.vectors != nil {
		results, err := e.vectors.SearchNative(ctx, queryVector, entityType, ScoreThreshold, limit)
		if err == nil {
			return &Result{
				Results: results,
				Summary: summarize(len(results), "native similarity search"),
			}, nil
		}
		e.logf("[SEARCH] native operator unavailable: %v", err)

		// Rung 2: fetch candidates and rank in-process.
		candidates, err := e.vectors.FetchCandidates(ctx, entityType, candidateFetchLimit)
		if err == nil {
			results := rank(queryVector, candidates, limit)
			return &Result{
				Results: results,
				Summary: summarize(len(results), "in-process ranking"),
			}, nil
		}
		e.logf("[SEARCH] candidate fetch unavailable: %v", err)
	}

	// Rung 3: unranked structured listing.
	return e.listFallback(ctx, entityType, limit)
}

func (e *Engine) listFallback(ctx context.Context, entityType string, limit int) (*Result, error) {
	if e.lister == nil {
		return nil, fmt.Errorf("no retrieval backend available")
	}

	entity := entityType
	if entity == "" {
		entity = "companies"
	}
	rows, err := e.lister.ListRecords(ctx, entity, limit)
	if err != nil {
		return nil, fmt.Errorf("structured listing fallback: %w", err)
	}

	return &Result{
		Unranked: rows,
		Summary:  fmt.Sprintf("unranked listing of %d %s records", len(rows), entity),
	}, nil
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

func summarize(n int, via string) string {
	if n == 0 {
		return "no records above the similarity threshold (" + via + ")"
	}
	return fmt.Sprintf("%d relevant records found via %s", n, via)
}

package search

import (
	"math"
	"sort"

	"opx-assistant-be/pkg/store"
)

// ScoreThreshold is the minimum similarity a hit must reach to be kept.
const ScoreThreshold = 0.7

// Cosine computes dot(a,b) / (|a|*|b|). Mismatched lengths or a zero
// vector yield 0, the "undefined" convention callers rely on.
func Cosine(a, b []float32) float64 {
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

// rank scores candidates against the query vector, filters at the
// threshold, sorts descending and truncates to limit.
func rank(query []float32, candidates []*store.StoredVector, limit int) []*store.SimilarityResult {
	results := make([]*store.SimilarityResult, 0, len(candidates))
	for _, c := range candidates {
		score := Cosine(query, c.Vector)
		if score < ScoreThreshold {
			continue
		}
		results = append(results, &store.SimilarityResult{
			EntityID:   c.EntityID,
			EntityType: c.EntityType,
			Excerpt:    c.Excerpt,
			Metadata:   c.Metadata,
			Score:      score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

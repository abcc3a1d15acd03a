package search

import (
	"math"
	"testing"

	"opx-assistant-be/pkg/store"
)

func TestCosineIdentity(t *testing.T) {
	v := []float32{0.3, -0.5, 0.8}
	got := Cosine(v, v)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Cosine(v, v) = %v, want 1", got)
	}
}

func TestCosineSymmetry(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{-2, 0.5, 7, 1}
	if Cosine(a, b) != Cosine(b, a) {
		t.Errorf("Cosine not symmetric: %v vs %v", Cosine(a, b), Cosine(b, a))
	}
}

func TestCosineBounds(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{-1, 0, 0},
		{0.5, 0.5, 0.5},
		{-3, 7, 0.1},
	}
	for _, a := range vectors {
		for _, b := range vectors {
			got := Cosine(a, b)
			if got < -1.0000001 || got > 1.0000001 {
				t.Errorf("Cosine(%v, %v) = %v out of [-1, 1]", a, b, got)
			}
		}
	}
}

func TestCosineZeroVector(t *testing.T) {
	if got := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}); got != 0 {
		t.Errorf("Cosine(zero, v) = %v, want 0", got)
	}
	if got := Cosine(nil, nil); got != 0 {
		t.Errorf("Cosine(nil, nil) = %v, want 0", got)
	}
}

func TestCosineOpposite(t *testing.T) {
	a := []float32{1, 1}
	b := []float32{-1, -1}
	if got := Cosine(a, b); math.Abs(got+1.0) > 1e-9 {
		t.Errorf("Cosine(a, -a) = %v, want -1", got)
	}
}

func TestRankFiltersSortsAndTruncates(t *testing.T) {
	query := []float32{1, 0}
	candidates := []*store.StoredVector{
		{EntityID: "exact", Vector: []float32{1, 0}},            // score 1.0
		{EntityID: "close", Vector: []float32{0.9, 0.2}},        // high
		{EntityID: "orthogonal", Vector: []float32{0, 1}},       // 0, dropped
		{EntityID: "opposite", Vector: []float32{-1, 0}},        // -1, dropped
		{EntityID: "borderline", Vector: []float32{0.7, 0.72}},  // just below 0.7
	}

	results := rank(query, candidates, 10)

	for i, r := range results {
		if r.Score < ScoreThreshold {
			t.Errorf("result %d has score %v below threshold", i, r.Score)
		}
		if i > 0 && results[i-1].Score < r.Score {
			t.Errorf("results not sorted descending at %d", i)
		}
	}

	if len(results) == 0 || results[0].EntityID != "exact" {
		t.Fatalf("expected exact match first, got %+v", results)
	}

	truncated := rank(query, candidates, 1)
	if len(truncated) != 1 {
		t.Errorf("limit 1 returned %d results", len(truncated))
	}
}

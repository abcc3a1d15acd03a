package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/store"
)

type fixedEmbedder struct {
	vector []float32
	err    error
}

func (f *fixedEmbedder) Model() string { return "fixed" }
func (f *fixedEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.err
}
func (f *fixedEmbedder) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, f.err
}

type fakeVectorStore struct {
	nativeResults []*store.SimilarityResult
	nativeErr     error
	candidates    []*store.StoredVector
	candidatesErr error
}

func (f *fakeVectorStore) SearchNative(ctx context.Context, query []float32, entityType string, threshold float64, limit int) ([]*store.SimilarityResult, error) {
	return f.nativeResults, f.nativeErr
}

func (f *fakeVectorStore) FetchCandidates(ctx context.Context, entityType string, limit int) ([]*store.StoredVector, error) {
	return f.candidates, f.candidatesErr
}

type fakeLister struct {
	rows []map[string]interface{}
	err  error
}

func (f *fakeLister) ListRecords(ctx context.Context, entity string, limit int) ([]map[string]interface{}, error) {
	return f.rows, f.err
}

func TestSearchPrefersNativeOperator(t *testing.T) {
	native := []*store.SimilarityResult{
		{EntityID: "a", Score: 0.95},
		{EntityID: "b", Score: 0.8},
	}
	e := NewEngine(
		&fixedEmbedder{vector: []float32{1, 0}},
		&fakeVectorStore{nativeResults: native},
		&fakeLister{},
		nil,
	)

	res, err := e.Search(context.Background(), "find acme", "companies", 10)
	assert.NoError(t, err)
	assert.Len(t, res.Results, 2)
	assert.Equal(t, "a", res.Results[0].EntityID)
}

func TestSearchFallsBackToInProcessRanking(t *testing.T) {
	vs := &fakeVectorStore{
		nativeErr: fmt.Errorf("operator <=> not supported"),
		candidates: []*store.StoredVector{
			{EntityID: "good", Vector: []float32{1, 0}},
			{EntityID: "bad", Vector: []float32{0, 1}},
		},
	}
	e := NewEngine(&fixedEmbedder{vector: []float32{1, 0}}, vs, &fakeLister{}, nil)

	res, err := e.Search(context.Background(), "find acme", "", 10)
	assert.NoError(t, err)
	assert.Len(t, res.Results, 1)
	assert.Equal(t, "good", res.Results[0].EntityID)
	assert.GreaterOrEqual(t, res.Results[0].Score, ScoreThreshold)
}

func TestSearchFallsBackToStructuredListing(t *testing.T) {
	vs := &fakeVectorStore{
		nativeErr:     fmt.Errorf("down"),
		candidatesErr: fmt.Errorf("down"),
	}
	lister := &fakeLister{rows: []map[string]interface{}{
		{"name": "Acme"}, {"name": "Umbrella"},
	}}
	e := NewEngine(&fixedEmbedder{vector: []float32{1, 0}}, vs, lister, nil)

	res, err := e.Search(context.Background(), "find acme", "companies", 10)
	assert.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Len(t, res.Unranked, 2)
}

func TestSearchListsWhenEmbeddingFails(t *testing.T) {
	lister := &fakeLister{rows: []map[string]interface{}{{"name": "Acme"}}}
	e := NewEngine(&fixedEmbedder{err: fmt.Errorf("quota")}, &fakeVectorStore{}, lister, nil)

	res, err := e.Search(context.Background(), "anything", "", 5)
	assert.NoError(t, err)
	assert.Len(t, res.Unranked, 1)
}

func TestSearchErrorsWhenNothingIsAvailable(t *testing.T) {
	e := NewEngine(&fixedEmbedder{err: fmt.Errorf("quota")}, nil, nil, nil)

	_, err := e.Search(context.Background(), "anything", "", 5)
	assert.Error(t, err)
}

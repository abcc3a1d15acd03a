package embedding

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingProvider struct {
	calls      int
	batchCalls int
}

func (p *countingProvider) Model() string { return "test-model" }

func (p *countingProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	p.calls++
	return []float32{float32(len(text)), 0.5, 0.25}, nil
}

func (p *countingProvider) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	p.batchCalls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 0.5, 0.25}
	}
	return out, nil
}

type failingProvider struct{}

func (p *failingProvider) Model() string { return "broken" }
func (p *failingProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("backend unreachable")
}
func (p *failingProvider) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, fmt.Errorf("backend unreachable")
}

func TestCachedProviderSingleUpstreamCall(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner)

	first, err := cached.Generate(context.Background(), "hello world")
	assert.NoError(t, err)

	second, err := cached.Generate(context.Background(), "hello world")
	assert.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "identical text must hit the backend once")
	assert.Equal(t, first, second, "cached vector must be bit-identical")
}

func TestCachedProviderDistinctTexts(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner)

	_, err := cached.Generate(context.Background(), "alpha")
	assert.NoError(t, err)
	_, err = cached.Generate(context.Background(), "beta")
	assert.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProviderBatchReusesHits(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner)

	_, err := cached.Generate(context.Background(), "alpha")
	assert.NoError(t, err)

	vectors, err := cached.GenerateBatch(context.Background(), []string{"alpha", "beta", "gamma"})
	assert.NoError(t, err)
	assert.Len(t, vectors, 3)
	for i, v := range vectors {
		assert.NotEmpty(t, v, "vector %d must be filled", i)
	}

	// "alpha" was cached; only the two misses go to the backend, in one call.
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, inner.batchCalls)
}

func TestCachedProviderPropagatesErrors(t *testing.T) {
	cached := NewCachedProvider(&failingProvider{})

	_, err := cached.Generate(context.Background(), "anything")
	assert.Error(t, err)

	_, err = cached.GenerateBatch(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

package embedding

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	cacheTTL         = 24 * time.Hour
	cacheSweepPeriod = 1 * time.Hour
)

// CachedProvider wraps another Provider with a 24-hour TTL cache keyed by
// (model, exact text). Writes are idempotent so concurrent overwrites are
// harmless; go-cache handles its own locking.
type CachedProvider struct {
	inner Provider
	store *cache.Cache
}

var _ Provider = &CachedProvider{}

func NewCachedProvider(inner Provider) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		store: cache.New(cacheTTL, cacheSweepPeriod),
	}
}

func (p *CachedProvider) Model() string {
	return p.inner.Model()
}

func (p *CachedProvider) cacheKey(text string) string {
	return p.inner.Model() + ":" + text
}

func (p *CachedProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	key := p.cacheKey(text)
	if cached, found := p.store.Get(key); found {
		return cached.([]float32), nil
	}

	vec, err := p.inner.Generate(ctx, text)
	if err != nil {
		// No silent fallback; the caller decides what a missing vector means.
		return nil, err
	}

	p.store.Set(key, vec, cache.DefaultExpiration)
	return vec, nil
}

func (p *CachedProvider) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	// Collect misses first so the backend sees one batch call.
	missIdx := make([]int, 0, len(texts))
	missTexts := make([]string, 0, len(texts))
	for i, text := range texts {
		if cached, found := p.store.Get(p.cacheKey(text)); found {
			vectors[i] = cached.([]float32)
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := p.inner.GenerateBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	for j, i := range missIdx {
		vectors[i] = fresh[j]
		p.store.Set(p.cacheKey(texts[i]), fresh[j], cache.DefaultExpiration)
	}
	return vectors, nil
}

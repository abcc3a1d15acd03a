package service

import (
	"context"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/specification"
	"opx-assistant-be/internal/repository/unitofwork"
	"opx-assistant-be/pkg/assistant/search"
	"opx-assistant-be/pkg/store"
)

// IVectorIndexService exposes the pgvector-backed data_embeddings
// table to the similarity search engine.
type IVectorIndexService interface {
	search.VectorStore
}

type vectorIndexService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewVectorIndexService(uowFactory unitofwork.RepositoryFactory) IVectorIndexService {
	return &vectorIndexService{uowFactory: uowFactory}
}

func (s *vectorIndexService) SearchNative(ctx context.Context, query []float32, entityType string, threshold float64, limit int) ([]*store.SimilarityResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	matches, err := uow.DataEmbeddingRepository().SearchSimilarWithScore(ctx, query, limit, entityType, threshold)
	if err != nil {
		return nil, err
	}

	results := make([]*store.SimilarityResult, len(matches))
	for i, m := range matches {
		results[i] = &store.SimilarityResult{
			EntityID:   m.Embedding.EntityId.String(),
			EntityType: m.Embedding.EntityType,
			Excerpt:    m.Embedding.Document,
			Metadata:   m.Embedding.Metadata,
			Score:      m.Similarity,
		}
	}
	return results, nil
}

func (s *vectorIndexService) FetchCandidates(ctx context.Context, entityType string, limit int) ([]*store.StoredVector, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.Pagination{Limit: limit},
	}
	if entityType != "" {
		specs = append(specs, specification.ByEntityType{EntityType: entityType})
	}

	embeddings, err := uow.DataEmbeddingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	candidates := make([]*store.StoredVector, len(embeddings))
	for i, e := range embeddings {
		candidates[i] = storedVectorOf(e)
	}
	return candidates, nil
}

func storedVectorOf(e *entity.DataEmbedding) *store.StoredVector {
	return &store.StoredVector{
		EntityID:   e.EntityId.String(),
		EntityType: e.EntityType,
		Excerpt:    e.Document,
		Metadata:   e.Metadata,
		Vector:     e.EmbeddingValue,
	}
}

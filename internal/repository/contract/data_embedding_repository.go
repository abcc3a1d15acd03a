package contract

import (
	"context"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DataEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DataEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DataEmbedding) error
	Update(ctx context.Context, embedding *entity.DataEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEntity(ctx context.Context, entityType string, entityId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DataEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DataEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Advanced
	SearchSimilar(ctx context.Context, embedding []float32, limit int, entityType string) ([]*entity.DataEmbedding, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, entityType string, threshold float64) ([]*entity.DataEmbeddingMatch, error)
}

package implementation

import (
	"context"
	"errors"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/mapper"
	"opx-assistant-be/internal/model"
	"opx-assistant-be/internal/repository/contract"
	"opx-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DataEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DataEmbeddingMapper
}

func NewDataEmbeddingRepository(db *gorm.DB) contract.DataEmbeddingRepository {
	return &DataEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDataEmbeddingMapper(),
	}
}

func (r *DataEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DataEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.DataEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *DataEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.DataEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DataEmbeddingRepositoryImpl) Update(ctx context.Context, embedding *entity.DataEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *DataEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DataEmbedding{}, id).Error
}

func (r *DataEmbeddingRepositoryImpl) DeleteByEntity(ctx context.Context, entityType string, entityId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityId).
		Delete(&model.DataEmbedding{}).Error
}

func (r *DataEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DataEmbedding, error) {
	var m model.DataEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DataEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DataEmbedding, error) {
	var models []*model.DataEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DataEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DataEmbedding{}).Count(&count).Error
	return count, err
}

func (r *DataEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, entityType string) ([]*entity.DataEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	query := r.db.WithContext(ctx).
		Where("deleted_at IS NULL")
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	var models []*model.DataEmbedding
	err := query.
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// SearchSimilarWithScore returns embeddings with similarity scores,
// filtered by threshold. Cosine distance in pgvector is
// 1 - cosine_similarity, so 1 - (embedding_value <=> query) recovers
// the similarity.
func (r *DataEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, entityType string, threshold float64) ([]*entity.DataEmbeddingMatch, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.DataEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("data_embeddings").
		Select("data_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold)
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	matches := make([]*entity.DataEmbeddingMatch, len(results))
	for i, res := range results {
		matches[i] = &entity.DataEmbeddingMatch{
			Embedding:  r.mapper.ToEntity(&res.DataEmbedding),
			Similarity: res.Similarity,
		}
	}
	return matches, nil
}

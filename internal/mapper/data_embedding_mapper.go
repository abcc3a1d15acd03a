package mapper

import (
	"time"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DataEmbeddingMapper struct{}

func NewDataEmbeddingMapper() *DataEmbeddingMapper {
	return &DataEmbeddingMapper{}
}

func (m *DataEmbeddingMapper) ToEntity(e *model.DataEmbedding) *entity.DataEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.DataEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		EntityType:     e.EntityType,
		EntityId:       e.EntityId,
		ChunkIndex:     e.ChunkIndex,
		Metadata:       map[string]interface{}(e.Metadata),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *DataEmbeddingMapper) ToModel(e *entity.DataEmbedding) *model.DataEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.DataEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		EntityType:     e.EntityType,
		EntityId:       e.EntityId,
		ChunkIndex:     e.ChunkIndex,
		Metadata:       datatypes.JSONMap(e.Metadata),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *DataEmbeddingMapper) ToEntities(embeddings []*model.DataEmbedding) []*entity.DataEmbedding {
	entities := make([]*entity.DataEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *DataEmbeddingMapper) ToModels(embeddings []*entity.DataEmbedding) []*model.DataEmbedding {
	models := make([]*model.DataEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DataEmbedding struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document       string            `gorm:"type:text"`
	EmbeddingValue pgvector.Vector   `gorm:"type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	EntityType     string            `gorm:"type:varchar(50);not null;index"`
	EntityId       uuid.UUID         `gorm:"type:uuid;not null;index"`
	ChunkIndex     int               `gorm:"default:0"` // 0-based index for ordering
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt    `gorm:"index"`
}

func (DataEmbedding) TableName() string {
	return "data_embeddings"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// DataEmbedding is one vectorized text chunk derived from a CRM record.
type DataEmbedding struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Document       string
	EmbeddingValue []float32
	EntityType     string
	EntityId       uuid.UUID `gorm:"type:uuid;index"`
	ChunkIndex     int
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// DataEmbeddingMatch is a similarity hit with its score, produced by
// the vector search queries.
type DataEmbeddingMatch struct {
	Embedding  *DataEmbedding
	Similarity float64
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Category  string
	Price     float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Campaign struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Channel   string
	Status    string
	Budget    float64
	StartsAt  *time.Time
	EndsAt    *time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Cnpj      string
	Sector    string
	City      string
	State     string
	Status    string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

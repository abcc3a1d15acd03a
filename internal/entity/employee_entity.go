package entity

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Cpf       string
	Email     string
	Position  string
	Salary    float64
	CompanyId uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

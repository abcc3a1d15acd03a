package entity

import (
	"time"

	"github.com/google/uuid"
)

type Prospect struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	CompanyName string
	Email       string
	Phone       string
	Status      string
	Source      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Benefit struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Category    string
	Provider    string
	MonthlyCost float64
	CompanyId   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

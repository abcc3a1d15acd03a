package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client is the authenticated actor record the assistant resolves
// permissions against.
type Client struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;index"`
	Name           string
	Email          string
	Role           string
	CompanyId      *uuid.UUID `gorm:"type:uuid;index"`
	IsCompanyAdmin bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

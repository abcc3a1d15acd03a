package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(255);not null;index"`
	Cnpj      string         `gorm:"type:varchar(14);uniqueIndex"`
	Sector    string         `gorm:"type:varchar(100);index"`
	City      string         `gorm:"type:varchar(100)"`
	State     string         `gorm:"type:varchar(2)"`
	Status    string         `gorm:"type:varchar(50);default:'active'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Prospect struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	CompanyName string         `gorm:"type:varchar(255)"`
	Email       string         `gorm:"type:varchar(255)"`
	Phone       string         `gorm:"type:varchar(20)"`
	Status      string         `gorm:"type:varchar(50);default:'new';index"`
	Source      string         `gorm:"type:varchar(100)"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Prospect) TableName() string {
	return "prospects"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Benefit struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Category    string         `gorm:"type:varchar(100);index"`
	Provider    string         `gorm:"type:varchar(255)"`
	MonthlyCost float64        `gorm:"type:numeric(12,2)"`
	CompanyId   *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Benefit) TableName() string {
	return "benefits"
}

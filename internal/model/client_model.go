package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Email          string         `gorm:"type:varchar(255);not null;index"`
	Role           string         `gorm:"type:varchar(50);not null;default:'user'"`
	CompanyId      *uuid.UUID     `gorm:"type:uuid;index"`
	IsCompanyAdmin bool           `gorm:"default:false"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Client) TableName() string {
	return "clients"
}

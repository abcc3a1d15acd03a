package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Campaign struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Channel   string         `gorm:"type:varchar(100)"`
	Status    string         `gorm:"type:varchar(50);default:'draft';index"`
	Budget    float64        `gorm:"type:numeric(14,2)"`
	StartsAt  *time.Time     `gorm:"index"`
	EndsAt    *time.Time
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

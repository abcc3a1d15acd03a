package mapper

import (
	"time"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/model"

	"gorm.io/gorm"
)

type ProspectMapper struct{}

func NewProspectMapper() *ProspectMapper {
	return &ProspectMapper{}
}

func (m *ProspectMapper) ToEntity(p *model.Prospect) *entity.Prospect {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Prospect{
		Id:          p.Id,
		Name:        p.Name,
		CompanyName: p.CompanyName,
		Email:       p.Email,
		Phone:       p.Phone,
		Status:      p.Status,
		Source:      p.Source,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   p.DeletedAt.Valid,
	}
}

func (m *ProspectMapper) ToModel(p *entity.Prospect) *model.Prospect {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Prospect{
		Id:          p.Id,
		Name:        p.Name,
		CompanyName: p.CompanyName,
		Email:       p.Email,
		Phone:       p.Phone,
		Status:      p.Status,
		Source:      p.Source,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ProspectMapper) ToEntities(prospects []*model.Prospect) []*entity.Prospect {
	entities := make([]*entity.Prospect, len(prospects))
	for i, p := range prospects {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

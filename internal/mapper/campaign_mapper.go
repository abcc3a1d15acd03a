package mapper

import (
	"time"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/model"

	"gorm.io/gorm"
)

type CampaignMapper struct{}

func NewCampaignMapper() *CampaignMapper {
	return &CampaignMapper{}
}

func (m *CampaignMapper) ToEntity(c *model.Campaign) *entity.Campaign {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Campaign{
		Id:        c.Id,
		Name:      c.Name,
		Channel:   c.Channel,
		Status:    c.Status,
		Budget:    c.Budget,
		StartsAt:  c.StartsAt,
		EndsAt:    c.EndsAt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: c.DeletedAt.Valid,
	}
}

func (m *CampaignMapper) ToModel(c *entity.Campaign) *model.Campaign {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Campaign{
		Id:        c.Id,
		Name:      c.Name,
		Channel:   c.Channel,
		Status:    c.Status,
		Budget:    c.Budget,
		StartsAt:  c.StartsAt,
		EndsAt:    c.EndsAt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *CampaignMapper) ToEntities(campaigns []*model.Campaign) []*entity.Campaign {
	entities := make([]*entity.Campaign, len(campaigns))
	for i, c := range campaigns {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

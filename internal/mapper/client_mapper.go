package mapper

import (
	"time"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/model"

	"gorm.io/gorm"
)

type ClientMapper struct{}

func NewClientMapper() *ClientMapper {
	return &ClientMapper{}
}

func (m *ClientMapper) ToEntity(c *model.Client) *entity.Client {
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

	return &entity.Client{
		Id:             c.Id,
		UserId:         c.UserId,
		Name:           c.Name,
		Email:          c.Email,
		Role:           c.Role,
		CompanyId:      c.CompanyId,
		IsCompanyAdmin: c.IsCompanyAdmin,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      c.DeletedAt.Valid,
	}
}

func (m *ClientMapper) ToModel(c *entity.Client) *model.Client {
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

	return &model.Client{
		Id:             c.Id,
		UserId:         c.UserId,
		Name:           c.Name,
		Email:          c.Email,
		Role:           c.Role,
		CompanyId:      c.CompanyId,
		IsCompanyAdmin: c.IsCompanyAdmin,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *ClientMapper) ToEntities(clients []*model.Client) []*entity.Client {
	entities := make([]*entity.Client, len(clients))
	for i, c := range clients {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

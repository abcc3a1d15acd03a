package mapper

import (
	"time"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/model"

	"gorm.io/gorm"
)

type CompanyMapper struct{}

func NewCompanyMapper() *CompanyMapper {
	return &CompanyMapper{}
}

func (m *CompanyMapper) ToEntity(c *model.Company) *entity.Company {
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

	return &entity.Company{
		Id:        c.Id,
		Name:      c.Name,
		Cnpj:      c.Cnpj,
		Sector:    c.Sector,
		City:      c.City,
		State:     c.State,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: c.DeletedAt.Valid,
	}
}

func (m *CompanyMapper) ToModel(c *entity.Company) *model.Company {
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

	return &model.Company{
		Id:        c.Id,
		Name:      c.Name,
		Cnpj:      c.Cnpj,
		Sector:    c.Sector,
		City:      c.City,
		State:     c.State,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *CompanyMapper) ToEntities(companies []*model.Company) []*entity.Company {
	entities := make([]*entity.Company, len(companies))
	for i, c := range companies {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

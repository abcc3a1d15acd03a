package mapper

import (
	"time"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/model"

	"gorm.io/gorm"
)

type BenefitMapper struct{}

func NewBenefitMapper() *BenefitMapper {
	return &BenefitMapper{}
}

func (m *BenefitMapper) ToEntity(b *model.Benefit) *entity.Benefit {
	if b == nil {
		return nil
	}

	var deletedAt *time.Time
	if b.DeletedAt.Valid {
		t := b.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	return &entity.Benefit{
		Id:          b.Id,
		Name:        b.Name,
		Category:    b.Category,
		Provider:    b.Provider,
		MonthlyCost: b.MonthlyCost,
		CompanyId:   b.CompanyId,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   b.DeletedAt.Valid,
	}
}

func (m *BenefitMapper) ToModel(b *entity.Benefit) *model.Benefit {
	if b == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if b.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *b.DeletedAt, Valid: true}
	} else if b.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if b.UpdatedAt != nil {
		updatedAt = *b.UpdatedAt
	}

	return &model.Benefit{
		Id:          b.Id,
		Name:        b.Name,
		Category:    b.Category,
		Provider:    b.Provider,
		MonthlyCost: b.MonthlyCost,
		CompanyId:   b.CompanyId,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *BenefitMapper) ToEntities(benefits []*model.Benefit) []*entity.Benefit {
	entities := make([]*entity.Benefit, len(benefits))
	for i, b := range benefits {
		entities[i] = m.ToEntity(b)
	}
	return entities
}

package implementation

import (
	"context"
	"errors"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/mapper"
	"opx-assistant-be/internal/model"
	"opx-assistant-be/internal/repository/contract"
	"opx-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BenefitRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BenefitMapper
}

func NewBenefitRepository(db *gorm.DB) contract.BenefitRepository {
	return &BenefitRepositoryImpl{
		db:     db,
		mapper: mapper.NewBenefitMapper(),
	}
}

func (r *BenefitRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BenefitRepositoryImpl) Create(ctx context.Context, benefit *entity.Benefit) error {
	m := r.mapper.ToModel(benefit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*benefit = *r.mapper.ToEntity(m)
	return nil
}

func (r *BenefitRepositoryImpl) Update(ctx context.Context, benefit *entity.Benefit) error {
	m := r.mapper.ToModel(benefit)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*benefit = *r.mapper.ToEntity(m)
	return nil
}

func (r *BenefitRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Benefit{}, id).Error
}

func (r *BenefitRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Benefit, error) {
	var m model.Benefit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BenefitRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Benefit, error) {
	var models []*model.Benefit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BenefitRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Benefit{}).Count(&count).Error
	return count, err
}

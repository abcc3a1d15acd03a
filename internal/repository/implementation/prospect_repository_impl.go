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

type ProspectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProspectMapper
}

func NewProspectRepository(db *gorm.DB) contract.ProspectRepository {
	return &ProspectRepositoryImpl{
		db:     db,
		mapper: mapper.NewProspectMapper(),
	}
}

func (r *ProspectRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProspectRepositoryImpl) Create(ctx context.Context, prospect *entity.Prospect) error {
	m := r.mapper.ToModel(prospect)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*prospect = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProspectRepositoryImpl) Update(ctx context.Context, prospect *entity.Prospect) error {
	m := r.mapper.ToModel(prospect)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*prospect = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProspectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Prospect{}, id).Error
}

func (r *ProspectRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prospect, error) {
	var m model.Prospect
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProspectRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prospect, error) {
	var models []*model.Prospect
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProspectRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Prospect{}).Count(&count).Error
	return count, err
}

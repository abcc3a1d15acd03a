package contract

import (
	"context"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BenefitRepository interface {
	Create(ctx context.Context, benefit *entity.Benefit) error
	Update(ctx context.Context, benefit *entity.Benefit) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Benefit, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Benefit, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package contract

import (
	"context"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Company, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

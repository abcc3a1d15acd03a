package contract

import (
	"context"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProspectRepository interface {
	Create(ctx context.Context, prospect *entity.Prospect) error
	Update(ctx context.Context, prospect *entity.Prospect) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prospect, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prospect, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package contract

import (
	"context"

	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	Update(ctx context.Context, campaign *entity.Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Campaign, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Campaign, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

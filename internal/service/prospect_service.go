package service

import (
	"context"
	"fmt"
	"time"

	"opx-assistant-be/internal/dto"
	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/specification"
	"opx-assistant-be/internal/repository/unitofwork"
	"opx-assistant-be/pkg/assistant/action"
	"opx-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type IProspectService interface {
	action.ProspectActions
}

type prospectService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewProspectService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IProspectService {
	return &prospectService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *prospectService) Create(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	name := stringParam(req.Params, "name")
	if name == "" {
		return nil, fmt.Errorf("prospect name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	prospect := entity.Prospect{
		Id:          uuid.New(),
		Name:        name,
		CompanyName: stringParam(req.Params, "company"),
		Email:       stringParam(req.Params, "email"),
		Phone:       stringParam(req.Params, "phone"),
		Status:      "new",
		Source:      "assistant",
		CreatedAt:   time.Now(),
	}
	if v := stringParam(req.Params, "source"); v != "" {
		prospect.Source = v
	}
	if err := uow.ProspectRepository().Create(ctx, &prospect); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, s.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "prospects",
		EntityId:   prospect.Id,
		Document: fmt.Sprintf("Prospect: %s. Company: %s. Status: %s. Source: %s.",
			prospect.Name, prospect.CompanyName, prospect.Status, prospect.Source),
	})

	return &store.ActionResult{
		Success: true,
		Data:    prospectRow(&prospect),
		Summary: fmt.Sprintf("prospect %s created", prospect.Name),
	}, nil
}

func (s *prospectService) List(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	}
	if status := stringParam(req.Params, "status"); status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	prospects, err := uow.ProspectRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, len(prospects))
	for i, prospect := range prospects {
		rows[i] = prospectRow(prospect)
	}

	return &store.ActionResult{
		Success: true,
		Data:    rows,
		Summary: fmt.Sprintf("%d prospects", len(rows)),
	}, nil
}

func prospectRow(p *entity.Prospect) map[string]interface{} {
	return map[string]interface{}{
		"id":      p.Id.String(),
		"name":    p.Name,
		"company": p.CompanyName,
		"email":   p.Email,
		"phone":   p.Phone,
		"status":  p.Status,
		"source":  p.Source,
	}
}

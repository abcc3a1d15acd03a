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

type IBenefitService interface {
	action.BenefitActions
}

type benefitService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewBenefitService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IBenefitService {
	return &benefitService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *benefitService) Create(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	name := stringParam(req.Params, "name")
	if name == "" {
		return nil, fmt.Errorf("benefit name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	benefit := entity.Benefit{
		Id:          uuid.New(),
		Name:        name,
		Category:    stringParam(req.Params, "category"),
		Provider:    stringParam(req.Params, "provider"),
		MonthlyCost: floatParam(req.Params, "monthly_cost"),
		CreatedAt:   time.Now(),
	}
	if id, ok := uuidParam(req.Params, "company_id"); ok {
		benefit.CompanyId = &id
	}
	if err := uow.BenefitRepository().Create(ctx, &benefit); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, s.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "benefits",
		EntityId:   benefit.Id,
		Document: fmt.Sprintf("Benefit: %s. Category: %s. Provider: %s.",
			benefit.Name, benefit.Category, benefit.Provider),
	})

	return &store.ActionResult{
		Success: true,
		Data:    benefitRow(&benefit),
		Summary: fmt.Sprintf("benefit %s created", benefit.Name),
	}, nil
}

func (s *benefitService) List(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	}
	if id, ok := uuidParam(req.Params, "company_id"); ok {
		specs = append(specs, specification.ByCompanyID{CompanyID: id})
	}

	benefits, err := uow.BenefitRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, len(benefits))
	for i, benefit := range benefits {
		rows[i] = benefitRow(benefit)
	}

	return &store.ActionResult{
		Success: true,
		Data:    rows,
		Summary: fmt.Sprintf("%d benefits", len(rows)),
	}, nil
}

func benefitRow(b *entity.Benefit) map[string]interface{} {
	row := map[string]interface{}{
		"id":           b.Id.String(),
		"name":         b.Name,
		"category":     b.Category,
		"provider":     b.Provider,
		"monthly_cost": b.MonthlyCost,
	}
	if b.CompanyId != nil {
		row["company_id"] = b.CompanyId.String()
	}
	return row
}

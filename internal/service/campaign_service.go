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

type ICampaignService interface {
	action.CampaignActions
}

type campaignService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewCampaignService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) ICampaignService {
	return &campaignService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *campaignService) Create(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	name := stringParam(req.Params, "name")
	if name == "" {
		return nil, fmt.Errorf("campaign name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	campaign := entity.Campaign{
		Id:        uuid.New(),
		Name:      name,
		Channel:   stringParam(req.Params, "channel"),
		Status:    "draft",
		Budget:    floatParam(req.Params, "budget"),
		CreatedAt: time.Now(),
	}
	if err := uow.CampaignRepository().Create(ctx, &campaign); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, s.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "campaigns",
		EntityId:   campaign.Id,
		Document: fmt.Sprintf("Campaign: %s. Channel: %s. Status: %s.",
			campaign.Name, campaign.Channel, campaign.Status),
	})

	return &store.ActionResult{
		Success: true,
		Data:    campaignRow(&campaign),
		Summary: fmt.Sprintf("campaign %s created", campaign.Name),
	}, nil
}

func (s *campaignService) List(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	}
	if status := stringParam(req.Params, "status"); status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	campaigns, err := uow.CampaignRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, len(campaigns))
	for i, campaign := range campaigns {
		rows[i] = campaignRow(campaign)
	}

	return &store.ActionResult{
		Success: true,
		Data:    rows,
		Summary: fmt.Sprintf("%d campaigns", len(rows)),
	}, nil
}

func campaignRow(c *entity.Campaign) map[string]interface{} {
	return map[string]interface{}{
		"id":      c.Id.String(),
		"name":    c.Name,
		"channel": c.Channel,
		"status":  c.Status,
		"budget":  c.Budget,
	}
}

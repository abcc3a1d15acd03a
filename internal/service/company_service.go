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

type ICompanyService interface {
	action.CompanyActions
}

type companyService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewCompanyService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) ICompanyService {
	return &companyService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (c *companyService) Create(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	name := stringParam(req.Params, "name")
	if name == "" {
		return nil, fmt.Errorf("company name is required")
	}
	cnpj := stringParam(req.Params, "cnpj")

	uow := c.uowFactory.NewUnitOfWork(ctx)

	if cnpj != "" {
		existing, err := uow.CompanyRepository().FindOne(ctx, specification.ByCnpj{Cnpj: cnpj})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("a company with cnpj %s already exists", cnpj)
		}
	}

	company := entity.Company{
		Id:        uuid.New(),
		Name:      name,
		Cnpj:      cnpj,
		Sector:    stringParam(req.Params, "sector"),
		City:      stringParam(req.Params, "city"),
		State:     stringParam(req.Params, "state"),
		Status:    "active",
		CreatedAt: time.Now(),
	}
	if err := uow.CompanyRepository().Create(ctx, &company); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, c.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "companies",
		EntityId:   company.Id,
		Document:   companyDocument(&company),
	})

	return &store.ActionResult{
		Success: true,
		Data:    companyRow(&company),
		Summary: fmt.Sprintf("company %s created", company.Name),
	}, nil
}

func (c *companyService) Update(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	company, err := c.locate(ctx, uow, req.Params)
	if err != nil {
		return nil, err
	}

	if v := stringParam(req.Params, "sector"); v != "" {
		company.Sector = v
	}
	if v := stringParam(req.Params, "city"); v != "" {
		company.City = v
	}
	if v := stringParam(req.Params, "state"); v != "" {
		company.State = v
	}
	if v := stringParam(req.Params, "status"); v != "" {
		company.Status = v
	}
	now := time.Now()
	company.UpdatedAt = &now

	if err := uow.CompanyRepository().Update(ctx, company); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, c.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "companies",
		EntityId:   company.Id,
		Document:   companyDocument(company),
	})

	return &store.ActionResult{
		Success: true,
		Data:    companyRow(company),
		Summary: fmt.Sprintf("company %s updated", company.Name),
	}, nil
}

func (c *companyService) Delete(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	company, err := c.locate(ctx, uow, req.Params)
	if err != nil {
		return nil, err
	}

	if err := uow.CompanyRepository().Delete(ctx, company.Id); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, c.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "companies",
		EntityId:   company.Id,
		Deleted:    true,
	})

	return &store.ActionResult{
		Success: true,
		Summary: fmt.Sprintf("company %s removed", company.Name),
	}, nil
}

func (c *companyService) Find(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	company, err := c.locate(ctx, uow, req.Params)
	if err != nil {
		return nil, err
	}

	return &store.ActionResult{
		Success: true,
		Data:    companyRow(company),
		Summary: fmt.Sprintf("company %s", company.Name),
	}, nil
}

func (c *companyService) List(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	}
	if sector := stringParam(req.Params, "sector"); sector != "" {
		specs = append(specs, specification.BySector{Sector: sector})
	}

	companies, err := uow.CompanyRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, len(companies))
	for i, company := range companies {
		rows[i] = companyRow(company)
	}

	return &store.ActionResult{
		Success: true,
		Data:    rows,
		Summary: fmt.Sprintf("%d companies", len(rows)),
	}, nil
}

// locate finds the referenced company by id, cnpj or name, in that
// order of precision.
func (c *companyService) locate(ctx context.Context, uow unitofwork.UnitOfWork, params map[string]interface{}) (*entity.Company, error) {
	if id, ok := uuidParam(params, "id"); ok {
		company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, err
		}
		if company != nil {
			return company, nil
		}
	}
	if cnpj := stringParam(params, "cnpj"); cnpj != "" {
		company, err := uow.CompanyRepository().FindOne(ctx, specification.ByCnpj{Cnpj: cnpj})
		if err != nil {
			return nil, err
		}
		if company != nil {
			return company, nil
		}
	}
	if name := stringParam(params, "name"); name != "" {
		company, err := uow.CompanyRepository().FindOne(ctx, specification.ByNameLike{Name: name})
		if err != nil {
			return nil, err
		}
		if company != nil {
			return company, nil
		}
	}
	return nil, fmt.Errorf("company not found")
}

func companyRow(c *entity.Company) map[string]interface{} {
	return map[string]interface{}{
		"id":     c.Id.String(),
		"name":   c.Name,
		"cnpj":   c.Cnpj,
		"sector": c.Sector,
		"city":   c.City,
		"state":  c.State,
		"status": c.Status,
	}
}

func companyDocument(c *entity.Company) string {
	return fmt.Sprintf("Company: %s. CNPJ: %s. Sector: %s. Location: %s/%s. Status: %s.",
		c.Name, c.Cnpj, c.Sector, c.City, c.State, c.Status)
}

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

type IProductService interface {
	action.ProductActions
}

type productService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IProductService {
	return &productService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *productService) Create(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	name := stringParam(req.Params, "name")
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	product := entity.Product{
		Id:        uuid.New(),
		Name:      name,
		Category:  stringParam(req.Params, "category"),
		Price:     floatParam(req.Params, "price"),
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uow.ProductRepository().Create(ctx, &product); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, s.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "products",
		EntityId:   product.Id,
		Document: fmt.Sprintf("Product: %s. Category: %s. Price: %.2f.",
			product.Name, product.Category, product.Price),
	})

	return &store.ActionResult{
		Success: true,
		Data:    productRow(&product),
		Summary: fmt.Sprintf("product %s created", product.Name),
	}, nil
}

func (s *productService) List(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	}

	products, err := uow.ProductRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, len(products))
	for i, product := range products {
		rows[i] = productRow(product)
	}

	return &store.ActionResult{
		Success: true,
		Data:    rows,
		Summary: fmt.Sprintf("%d products", len(rows)),
	}, nil
}

func productRow(p *entity.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":       p.Id.String(),
		"name":     p.Name,
		"category": p.Category,
		"price":    p.Price,
		"active":   p.Active,
	}
}

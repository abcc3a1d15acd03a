package action

import (
	"context"
	"fmt"
	"log"

	"opx-assistant-be/pkg/store"
)

// StructuredStore is the structured data collaborator: capability-driven
// queries addressed by entity name. The executor never sees SQL.
type StructuredStore interface {
	Count(ctx context.Context, entity string, filters map[string]interface{}) (int64, error)
	Aggregate(ctx context.Context, entity string, aggregation string, field string, filters map[string]interface{}) (float64, error)
	GroupCount(ctx context.Context, entity string, groupBy string, filters map[string]interface{}) ([]map[string]interface{}, error)
	TimeSeries(ctx context.Context, entity string, granularity string, filters map[string]interface{}) ([]map[string]interface{}, error)
	List(ctx context.Context, entity string, filters map[string]interface{}, limit int) ([]map[string]interface{}, error)
	ListWithoutRelated(ctx context.Context, entity string, related string) ([]map[string]interface{}, error)
}

const defaultListLimit = 50

// QueryExecutor runs structured QueryPlans against the store
// collaborator and shapes the outcome flags visualization relies on.
type QueryExecutor struct {
	store  StructuredStore
	logger *log.Logger
}

func NewQueryExecutor(structured StructuredStore, logger *log.Logger) *QueryExecutor {
	return &QueryExecutor{
		store:  structured,
		logger: logger,
	}
}

// Execute never returns an error; store failures land in the result.
func (q *QueryExecutor) Execute(ctx context.Context, plan *store.QueryPlan) *store.ActionResult {
	if q.store == nil {
		return failure("structured store unavailable")
	}
	if len(plan.Entities) == 0 {
		return failure("plan names no entities")
	}
	entity := plan.Entities[0]

	switch plan.QueryType {
	case store.QueryCount:
		count, err := q.store.Count(ctx, entity, plan.Filters)
		if err != nil {
			return failure(err.Error())
		}
		return &store.ActionResult{
			Success: true,
			Count:   count,
			IsCount: true,
			Summary: fmt.Sprintf("%d %s", count, entity),
		}

	case store.QueryAggregate:
		field := ""
		if len(plan.SelectFields) > 0 {
			field = plan.SelectFields[0]
		}
		value, err := q.store.Aggregate(ctx, entity, plan.Aggregation, field, plan.Filters)
		if err != nil {
			return failure(err.Error())
		}
		return &store.ActionResult{
			Success:     true,
			Data:        value,
			IsAggregate: true,
			Summary:     fmt.Sprintf("%s(%s.%s) = %.2f", plan.Aggregation, entity, field, value),
		}

	case store.QueryGroupBy:
		rows, err := q.store.GroupCount(ctx, entity, plan.GroupBy, plan.Filters)
		if err != nil {
			return failure(err.Error())
		}
		return &store.ActionResult{
			Success:     true,
			Data:        rows,
			IsAggregate: true,
			IsGrouped:   true,
			Summary:     fmt.Sprintf("%d groups of %s by %s", len(rows), entity, plan.GroupBy),
		}

	case store.QueryTimeSeries:
		granularity := plan.TimeGrouping
		if granularity == "" {
			granularity = "month"
		}
		rows, err := q.store.TimeSeries(ctx, entity, granularity, plan.Filters)
		if err != nil {
			return failure(err.Error())
		}
		return &store.ActionResult{
			Success:      true,
			Data:         rows,
			IsTimeSeries: true,
			Summary:      fmt.Sprintf("%s per %s, %d points", entity, granularity, len(rows)),
		}

	case store.QueryCrossEntity:
		related := "employees"
		if len(plan.Entities) > 1 {
			related = plan.Entities[1]
		}
		rows, err := q.store.ListWithoutRelated(ctx, entity, related)
		if err != nil {
			return failure(err.Error())
		}
		return &store.ActionResult{
			Success: true,
			Data:    rows,
			Summary: fmt.Sprintf("%d %s without %s", len(rows), entity, related),
		}

	default: // list
		rows, err := q.store.List(ctx, entity, plan.Filters, defaultListLimit)
		if err != nil {
			return failure(err.Error())
		}
		return &store.ActionResult{
			Success: true,
			Data:    rows,
			Summary: fmt.Sprintf("%d %s", len(rows), entity),
		}
	}
}

func failure(reason string) *store.ActionResult {
	return &store.ActionResult{
		Success: false,
		Error:   reason,
	}
}

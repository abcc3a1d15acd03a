package contract

import "context"

// DatasetRepository serves capability-style analytical queries over the
// CRM tables, addressed by whitelisted entity name rather than by Go
// type. It backs the structured retrieval path of the assistant.
type DatasetRepository interface {
	CountRecords(ctx context.Context, entity string, filters map[string]interface{}) (int64, error)
	Aggregate(ctx context.Context, entity string, aggregation string, field string, filters map[string]interface{}) (float64, error)
	GroupCount(ctx context.Context, entity string, groupBy string, filters map[string]interface{}) ([]map[string]interface{}, error)
	TimeSeries(ctx context.Context, entity string, granularity string, filters map[string]interface{}) ([]map[string]interface{}, error)
	ListRecords(ctx context.Context, entity string, filters map[string]interface{}, limit int) ([]map[string]interface{}, error)
	ListWithoutRelated(ctx context.Context, entity string, related string) ([]map[string]interface{}, error)
}

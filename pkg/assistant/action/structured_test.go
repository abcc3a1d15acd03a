package action

import (
	"context"
	"fmt"
	"testing"

	"opx-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	count     int64
	aggregate float64
	groups    []map[string]interface{}
	series    []map[string]interface{}
	rows      []map[string]interface{}
	orphans   []map[string]interface{}
	err       error
}

func (f *fakeStore) Count(ctx context.Context, entity string, filters map[string]interface{}) (int64, error) {
	return f.count, f.err
}

func (f *fakeStore) Aggregate(ctx context.Context, entity string, aggregation string, field string, filters map[string]interface{}) (float64, error) {
	return f.aggregate, f.err
}

func (f *fakeStore) GroupCount(ctx context.Context, entity string, groupBy string, filters map[string]interface{}) ([]map[string]interface{}, error) {
	return f.groups, f.err
}

func (f *fakeStore) TimeSeries(ctx context.Context, entity string, granularity string, filters map[string]interface{}) ([]map[string]interface{}, error) {
	return f.series, f.err
}

func (f *fakeStore) List(ctx context.Context, entity string, filters map[string]interface{}, limit int) ([]map[string]interface{}, error) {
	return f.rows, f.err
}

func (f *fakeStore) ListWithoutRelated(ctx context.Context, entity string, related string) ([]map[string]interface{}, error) {
	return f.orphans, f.err
}

func TestExecuteCountSetsFlags(t *testing.T) {
	q := NewQueryExecutor(&fakeStore{count: 12}, nil)

	res := q.Execute(context.Background(), &store.QueryPlan{
		QueryType: store.QueryCount,
		Entities:  []string{"companies"},
	})

	assert.True(t, res.Success)
	assert.True(t, res.IsCount)
	assert.Equal(t, int64(12), res.Count)
	assert.Equal(t, "12 companies", res.Summary)
}

func TestExecuteAggregateUsesFirstSelectField(t *testing.T) {
	q := NewQueryExecutor(&fakeStore{aggregate: 4321.5}, nil)

	res := q.Execute(context.Background(), &store.QueryPlan{
		QueryType:    store.QueryAggregate,
		Entities:     []string{"employees"},
		Aggregation:  "avg",
		SelectFields: []string{"salary"},
	})

	assert.True(t, res.Success)
	assert.True(t, res.IsAggregate)
	assert.Equal(t, 4321.5, res.Data)
	assert.Contains(t, res.Summary, "avg(employees.salary)")
}

func TestExecuteGroupByMarksGrouped(t *testing.T) {
	groups := []map[string]interface{}{
		{"group": "tech", "count": int64(7)},
		{"group": "retail", "count": int64(3)},
	}
	q := NewQueryExecutor(&fakeStore{groups: groups}, nil)

	res := q.Execute(context.Background(), &store.QueryPlan{
		QueryType: store.QueryGroupBy,
		Entities:  []string{"companies"},
		GroupBy:   "sector",
	})

	assert.True(t, res.Success)
	assert.True(t, res.IsGrouped)
	assert.True(t, res.IsAggregate)
	assert.Equal(t, groups, res.Data)
}

func TestExecuteTimeSeriesDefaultsToMonth(t *testing.T) {
	q := NewQueryExecutor(&fakeStore{series: []map[string]interface{}{{"period": "2026-01", "count": int64(2)}}}, nil)

	res := q.Execute(context.Background(), &store.QueryPlan{
		QueryType: store.QueryTimeSeries,
		Entities:  []string{"prospects"},
	})

	assert.True(t, res.Success)
	assert.True(t, res.IsTimeSeries)
	assert.Contains(t, res.Summary, "per month")
}

func TestExecuteStoreErrorBecomesFailureResult(t *testing.T) {
	q := NewQueryExecutor(&fakeStore{err: fmt.Errorf("table not allowed")}, nil)

	res := q.Execute(context.Background(), &store.QueryPlan{
		QueryType: store.QueryCount,
		Entities:  []string{"secrets"},
	})

	assert.False(t, res.Success)
	assert.Equal(t, "table not allowed", res.Error)
}

func TestExecuteWithoutEntitiesFails(t *testing.T) {
	q := NewQueryExecutor(&fakeStore{}, nil)

	res := q.Execute(context.Background(), &store.QueryPlan{QueryType: store.QueryCount})

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

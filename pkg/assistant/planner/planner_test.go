package planner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/assistant/knowledge"
	"opx-assistant-be/pkg/llm"
	"opx-assistant-be/pkg/store"
)

type scriptedLLM struct {
	reply string
	err   error
	calls int
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, nil, opts...)
}

func retrievalIntent() *store.Intent {
	return &store.Intent{Name: "query_database", Params: map[string]interface{}{}, Confidence: 0.9}
}

func TestPlanUsesValidLLMResponse(t *testing.T) {
	backend := &scriptedLLM{
		reply: `{"strategy": "structured", "queryType": "count", "entities": ["companies"], "confidence": 0.85}`,
	}
	p := NewPlanner(backend, knowledge.NewBase(), nil)

	plan := p.Plan(context.Background(), "how many companies?", retrievalIntent())
	assert.Equal(t, store.StrategyStructured, plan.Strategy)
	assert.Equal(t, store.QueryCount, plan.QueryType)
	assert.Equal(t, []string{"companies"}, plan.Entities)
	assert.Equal(t, 0.85, plan.Confidence)
}

func TestPlanRejectsUnknownEntities(t *testing.T) {
	backend := &scriptedLLM{
		reply: `{"strategy": "structured", "queryType": "list", "entities": ["invoices"]}`,
	}
	p := NewPlanner(backend, knowledge.NewBase(), nil)

	// "list companies" still matches a heuristic, so the fallback plan
	// is structured even though the LLM plan was discarded.
	plan := p.Plan(context.Background(), "list companies", retrievalIntent())
	assert.Equal(t, []string{"companies"}, plan.Entities)
	assert.Equal(t, confidenceHeuristic, plan.Confidence)
}

func TestPlanFallsBackOnBackendError(t *testing.T) {
	backend := &scriptedLLM{err: fmt.Errorf("connection refused")}
	p := NewPlanner(backend, knowledge.NewBase(), nil)

	tests := []struct {
		name          string
		text          string
		wantQueryType string
		wantStrategy  string
	}{
		{"count heuristic", "how many companies are registered?", store.QueryCount, store.StrategyStructured},
		{"average heuristic", "what is the average salary of employees?", store.QueryAggregate, store.StrategyStructured},
		{"group heuristic", "companies by sector please", store.QueryGroupBy, store.StrategyStructured},
		{"time series heuristic", "company growth per month", store.QueryTimeSeries, store.StrategyStructured},
		{"cross entity heuristic", "companies without employees", store.QueryCrossEntity, store.StrategyStructured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := p.Plan(context.Background(), tt.text, retrievalIntent())
			assert.Equal(t, tt.wantStrategy, plan.Strategy)
			assert.Equal(t, tt.wantQueryType, plan.QueryType)
			assert.Equal(t, confidenceHeuristic, plan.Confidence)
		})
	}
}

func TestPlanGenericSemanticFallback(t *testing.T) {
	backend := &scriptedLLM{reply: "I cannot answer in JSON, sorry."}
	p := NewPlanner(backend, knowledge.NewBase(), nil)

	plan := p.Plan(context.Background(), "anything interesting about wellness programs?", retrievalIntent())
	assert.Equal(t, store.StrategySemantic, plan.Strategy)
	assert.True(t, plan.NeedsEmbedding)
	assert.Equal(t, confidenceFallback, plan.Confidence)
}

func TestAverageSalaryTargetsEmployees(t *testing.T) {
	p := NewPlanner(nil, knowledge.NewBase(), nil)

	plan := p.Plan(context.Background(), "average salary", retrievalIntent())
	assert.Equal(t, []string{"employees"}, plan.Entities)
	assert.Equal(t, "avg", plan.Aggregation)
	assert.Equal(t, []string{"salary"}, plan.SelectFields)
}

func TestAveragePerCompanyTargetsAggregatableColumn(t *testing.T) {
	p := NewPlanner(nil, knowledge.NewBase(), nil)

	// Companies carry no numeric column, so the average lands on the
	// first detected entity that has one.
	plan := p.Plan(context.Background(), "what is the average employee count per company?", retrievalIntent())
	assert.Equal(t, store.QueryAggregate, plan.QueryType)
	assert.Equal(t, []string{"employees"}, plan.Entities)
	assert.Equal(t, []string{"salary"}, plan.SelectFields)
}

func TestSearchFlavoredTextGetsSemanticPlan(t *testing.T) {
	p := NewPlanner(nil, knowledge.NewBase(), nil)

	plan := p.Plan(context.Background(), "find companies similar to Acme Solar", retrievalIntent())
	assert.Equal(t, store.StrategySemantic, plan.Strategy)
	assert.True(t, plan.NeedsEmbedding)
	assert.Equal(t, []string{"companies"}, plan.Entities)
}

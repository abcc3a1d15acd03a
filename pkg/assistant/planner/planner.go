package planner

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"opx-assistant-be/pkg/assistant/knowledge"
	"opx-assistant-be/pkg/llm"
	"opx-assistant-be/pkg/store"
)

// Confidence tiers: LLM-produced plans, heuristic plans, and the generic
// semantic fallback.
const (
	confidenceLLM       = 0.8
	confidenceHeuristic = 0.6
	confidenceFallback  = 0.5
)

// Planner decides how a retrieval intent should be executed: structured
// query, semantic search, or a hybrid of both. The primary path asks the
// completion backend for a JSON plan grounded on the knowledge catalog;
// malformed or unreachable responses fall back to keyword heuristics.
type Planner struct {
	llmProvider llm.LLMProvider
	kb          *knowledge.Base
	logger      *log.Logger
}

func NewPlanner(llmProvider llm.LLMProvider, kb *knowledge.Base, logger *log.Logger) *Planner {
	return &Planner{
		llmProvider: llmProvider,
		kb:          kb,
		logger:      logger,
	}
}

// Plan produces a fresh QueryPlan for one command. Never fails: the
// generic semantic plan is the floor.
func (p *Planner) Plan(ctx context.Context, text string, cmdIntent *store.Intent) *store.QueryPlan {
	if p.llmProvider != nil {
		if plan := p.planWithLLM(ctx, text); plan != nil {
			return plan
		}
	}

	if plan := p.planHeuristically(text); plan != nil {
		return plan
	}

	return p.genericSemanticPlan(text)
}

// --- Primary path: completion backend ---

func (p *Planner) planWithLLM(ctx context.Context, text string) *store.QueryPlan {
	prompt := p.buildPrompt(text)

	raw, err := p.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithJSONResponse(),
	)
	if err != nil {
		if p.logger != nil {
			p.logger.Printf("[PLANNER] completion backend unavailable, using heuristics: %v", err)
		}
		return nil
	}

	var plan store.QueryPlan
	if err := json.Unmarshal([]byte(extractJSON(raw)), &plan); err != nil {
		if p.logger != nil {
			p.logger.Printf("[PLANNER] malformed plan JSON, using heuristics: %v", err)
		}
		return nil
	}

	if !p.validate(&plan) {
		if p.logger != nil {
			p.logger.Printf("[PLANNER] plan failed validation, using heuristics")
		}
		return nil
	}

	p.applyDefaults(&plan)
	return &plan
}

func (p *Planner) buildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<task>\n")
	sb.WriteString("Plan how to answer the user question against the database below.\n")
	sb.WriteString("Choose strategy \"structured\" for filters/aggregations, \"semantic\" for fuzzy text matching, \"hybrid\" for both.\n")
	sb.WriteString("</task>\n\n")
	sb.WriteString(p.kb.SchemaText())
	sb.WriteString("\n\n<question>\n")
	sb.WriteString(text)
	sb.WriteString("\n</question>\n\n")
	sb.WriteString("Answer with JSON only, matching this shape:\n")
	sb.WriteString(`{"strategy": "` + strings.Join(p.kb.Technologies(), "|") + `", "queryType": "count|aggregate|group_by|time_series|list|cross_entity", "entities": ["..."], "needsEmbedding": false, "aggregation": "", "groupBy": "", "selectFields": [], "filters": {}, "timeGrouping": "", "description": "", "confidence": 0.8}`)
	return sb.String()
}

// validate rejects plans whose required keys are missing or whose
// entities are not in the catalog.
func (p *Planner) validate(plan *store.QueryPlan) bool {
	switch plan.Strategy {
	case store.StrategyStructured, store.StrategySemantic, store.StrategyHybrid:
	default:
		return false
	}

	if len(plan.Entities) == 0 {
		return false
	}
	for _, entity := range plan.Entities {
		if !p.kb.HasEntity(entity) {
			return false
		}
	}
	return true
}

func (p *Planner) applyDefaults(plan *store.QueryPlan) {
	if plan.QueryType == "" {
		plan.QueryType = store.QueryList
	}
	if plan.Confidence <= 0 || plan.Confidence > 1 {
		plan.Confidence = confidenceLLM
	}
	if plan.Filters == nil {
		plan.Filters = make(map[string]interface{})
	}
	if plan.Strategy != store.StrategyStructured {
		plan.NeedsEmbedding = true
	}
}

// --- Fallback path: keyword heuristics ---

func (p *Planner) planHeuristically(text string) *store.QueryPlan {
	entities := p.kb.DetectEntities(text)
	primary := "companies"
	if len(entities) > 0 {
		primary = entities[0]
	}

	switch p.kb.SuggestApproach(text) {
	case store.QueryCount:
		return &store.QueryPlan{
			Strategy:    store.StrategyStructured,
			QueryType:   store.QueryCount,
			Entities:    []string{primary},
			Description: "count rows of " + primary,
			Filters:     map[string]interface{}{},
			Confidence:  confidenceHeuristic,
		}

	case store.QueryAggregate:
		entity, field := p.numericTarget(entities)
		return &store.QueryPlan{
			Strategy:     store.StrategyStructured,
			QueryType:    store.QueryAggregate,
			Entities:     []string{entity},
			Aggregation:  "avg",
			SelectFields: []string{field},
			Description:  "average of " + entity + "." + field,
			Filters:      map[string]interface{}{},
			Confidence:   confidenceHeuristic,
		}

	case store.QueryGroupBy:
		return &store.QueryPlan{
			Strategy:    store.StrategyStructured,
			QueryType:   store.QueryGroupBy,
			Entities:    []string{"companies"},
			GroupBy:     "sector",
			Description: "count companies grouped by sector",
			Filters:     map[string]interface{}{},
			Confidence:  confidenceHeuristic,
		}

	case store.QueryTimeSeries:
		return &store.QueryPlan{
			Strategy:     store.StrategyStructured,
			QueryType:    store.QueryTimeSeries,
			Entities:     []string{primary},
			TimeGrouping: "month",
			Description:  "count of " + primary + " per month",
			Filters:      map[string]interface{}{},
			Confidence:   confidenceHeuristic,
		}

	case store.QueryCrossEntity:
		return &store.QueryPlan{
			Strategy:    store.StrategyStructured,
			QueryType:   store.QueryCrossEntity,
			Entities:    []string{"companies", "employees"},
			Description: "companies with no related employees",
			Filters:     map[string]interface{}{},
			Confidence:  confidenceHeuristic,
		}

	case store.QueryList:
		return &store.QueryPlan{
			Strategy:    store.StrategyStructured,
			QueryType:   store.QueryList,
			Entities:    []string{primary},
			Description: "list rows of " + primary,
			Filters:     map[string]interface{}{},
			Confidence:  confidenceHeuristic,
		}
	}

	// Semantic suggestion or no keyword at all: the generic plan covers it.
	return nil
}

// numericTarget picks the entity/field pair an average should run over.
// Only entities whose catalog entry carries a numeric field qualify, so
// the plan always names an aggregatable column. Salary is the dominant
// ask, so employees win when nothing qualifies.
func (p *Planner) numericTarget(detected []string) (string, string) {
	for _, name := range detected {
		if e, ok := p.kb.Entity(name); ok && len(e.NumericFields) > 0 {
			return e.Name, e.NumericFields[0]
		}
	}
	return "employees", "salary"
}

func (p *Planner) genericSemanticPlan(text string) *store.QueryPlan {
	entities := p.kb.DetectEntities(text)
	if len(entities) == 0 {
		entities = []string{"companies"}
	}
	return &store.QueryPlan{
		Strategy:       store.StrategySemantic,
		QueryType:      store.QueryList,
		Entities:       entities,
		NeedsEmbedding: true,
		Description:    "semantic search over vectorized records",
		Filters:        map[string]interface{}{},
		Confidence:     confidenceFallback,
	}
}

func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

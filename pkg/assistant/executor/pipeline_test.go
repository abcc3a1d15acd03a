package executor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/assistant/action"
	"opx-assistant-be/pkg/assistant/contextinfo"
	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/assistant/knowledge"
	"opx-assistant-be/pkg/assistant/memory"
	"opx-assistant-be/pkg/assistant/permission"
	"opx-assistant-be/pkg/assistant/planner"
	"opx-assistant-be/pkg/assistant/response"
	"opx-assistant-be/pkg/assistant/search"
	"opx-assistant-be/pkg/assistant/suggestion"
	"opx-assistant-be/pkg/assistant/supervisor"
	"opx-assistant-be/pkg/assistant/visualization"
	"opx-assistant-be/pkg/llm"
	"opx-assistant-be/pkg/store"
)

type scriptedBackend struct {
	reply string
	err   error
	calls int
}

func (s *scriptedBackend) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *scriptedBackend) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, nil, opts...)
}

type stubResolver struct {
	actors map[string]*store.Actor
	calls  int
}

func (r *stubResolver) Resolve(_ context.Context, userID string) (*store.Actor, error) {
	r.calls++
	return r.actors[userID], nil
}

// countingStore serves structured queries and counts every call so
// tests can assert the pipeline made no collaborator calls at all.
type countingStore struct {
	calls     int
	countRows int64
}

func (s *countingStore) Count(context.Context, string, map[string]interface{}) (int64, error) {
	s.calls++
	return s.countRows, nil
}

func (s *countingStore) Aggregate(context.Context, string, string, string, map[string]interface{}) (float64, error) {
	s.calls++
	return 0, nil
}

func (s *countingStore) GroupCount(context.Context, string, string, map[string]interface{}) ([]map[string]interface{}, error) {
	s.calls++
	return nil, nil
}

func (s *countingStore) TimeSeries(context.Context, string, string, map[string]interface{}) ([]map[string]interface{}, error) {
	s.calls++
	return nil, nil
}

func (s *countingStore) List(context.Context, string, map[string]interface{}, int) ([]map[string]interface{}, error) {
	s.calls++
	return []map[string]interface{}{{"name": "Acme"}}, nil
}

func (s *countingStore) ListWithoutRelated(context.Context, string, string) ([]map[string]interface{}, error) {
	s.calls++
	return nil, nil
}

// emptyListStore serves every structured query but has no rows to list.
type emptyListStore struct{ countingStore }

func (s *emptyListStore) List(context.Context, string, map[string]interface{}, int) ([]map[string]interface{}, error) {
	s.calls++
	return nil, nil
}

type countingEmbedder struct{ calls int }

func (e *countingEmbedder) Model() string { return "test-embedder" }

func (e *countingEmbedder) Generate(context.Context, string) ([]float32, error) {
	e.calls++
	return []float32{1, 0, 0}, nil
}

func (e *countingEmbedder) GenerateBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type stubVectorStore struct {
	results []*store.SimilarityResult
}

func (s stubVectorStore) SearchNative(context.Context, []float32, string, float64, int) ([]*store.SimilarityResult, error) {
	return s.results, nil
}

func (s stubVectorStore) FetchCandidates(context.Context, string, int) ([]*store.StoredVector, error) {
	return nil, nil
}

type listerFromStore struct{ store *countingStore }

func (l listerFromStore) ListRecords(ctx context.Context, entity string, limit int) ([]map[string]interface{}, error) {
	return l.store.List(ctx, entity, nil, limit)
}

// companyRecorder captures the request passed to the company
// collaborator.
type companyRecorder struct {
	calls   int
	lastReq action.Request
}

func (c *companyRecorder) Create(_ context.Context, req action.Request) (*store.ActionResult, error) {
	c.calls++
	c.lastReq = req
	return &store.ActionResult{
		Success: true,
		Data:    map[string]interface{}{"name": req.Params["name"]},
		Summary: "company created",
	}, nil
}

func (c *companyRecorder) Update(_ context.Context, req action.Request) (*store.ActionResult, error) {
	c.calls++
	return &store.ActionResult{Success: true, Summary: "company updated"}, nil
}

func (c *companyRecorder) Delete(_ context.Context, req action.Request) (*store.ActionResult, error) {
	c.calls++
	return &store.ActionResult{Success: true, Summary: "company deleted"}, nil
}

func (c *companyRecorder) Find(_ context.Context, req action.Request) (*store.ActionResult, error) {
	c.calls++
	return &store.ActionResult{Success: true, Data: map[string]interface{}{"name": "Acme"}}, nil
}

func (c *companyRecorder) List(_ context.Context, req action.Request) (*store.ActionResult, error) {
	c.calls++
	return &store.ActionResult{Success: true, Data: []map[string]interface{}{{"name": "Acme"}}}, nil
}

type fixture struct {
	orchestrator *Orchestrator
	structured   *countingStore
	companies    *companyRecorder
	embedder     *countingEmbedder
	memory       *memory.Store
}

func newFixture(actors map[string]*store.Actor) *fixture {
	resolver := &stubResolver{actors: actors}
	structured := &countingStore{countRows: 42}
	companies := &companyRecorder{}
	embedder := &countingEmbedder{}
	mem := memory.NewStore()

	sup := supervisor.New(nil, nil)
	vectors := stubVectorStore{results: []*store.SimilarityResult{{
		EntityID:   "c9",
		EntityType: "companies",
		Excerpt:    "Acme Solar, a solar energy company working with renewable power",
		Score:      0.91,
	}}}
	engine := search.NewEngine(embedder, vectors, listerFromStore{store: structured}, nil)
	dispatcher := action.NewDispatcher(action.Collaborators{Companies: companies}, nil)

	orchestrator := NewOrchestrator(Deps{
		Supervisor:  sup,
		Classifier:  intent.NewClassifier(nil, nil),
		Permissions: permission.NewEvaluator(resolver, nil),
		Actors:      resolver,
		Collector:   contextinfo.NewCollector(resolver, nil),
		Planner:     planner.NewPlanner(nil, knowledge.NewBase(), nil),
		Queries:     action.NewQueryExecutor(structured, nil),
		Search:      engine,
		Dispatcher:  dispatcher,
		Viz:         visualization.NewBuilder(),
		Composer:    response.NewComposer(),
		Suggestions: suggestion.NewGenerator(),
		Memory:      mem,
	})

	return &fixture{
		orchestrator: orchestrator,
		structured:   structured,
		companies:    companies,
		embedder:     embedder,
		memory:       mem,
	}
}

func adminActors() map[string]*store.Actor {
	return map[string]*store.Actor{
		"u1": {ID: "a1", UserID: "u1", Name: "Ana", Role: "admin", CompanyID: "c1"},
	}
}

func regularActors() map[string]*store.Actor {
	return map[string]*store.Actor{
		"u2": {ID: "a2", UserID: "u2", Name: "Bruno", Role: "user", CompanyID: "c1"},
	}
}

func TestRunCountCommandProducesCardAndCount(t *testing.T) {
	f := newFixture(adminActors())

	result := f.orchestrator.Run(context.Background(), store.Command{
		Text:   "how many companies exist?",
		UserID: "u1",
	}, nil)

	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "42")
	assert.Equal(t, intent.QueryDatabase, result.Intent)

	if assert.NotEmpty(t, result.Visualizations) {
		assert.Equal(t, store.VizCard, result.Visualizations[0].Type)
	}
	assert.Equal(t, 1, f.memory.Len())
}

func TestRunExtractsTaxIdentifierIntoParams(t *testing.T) {
	f := newFixture(adminActors())

	result := f.orchestrator.Run(context.Background(), store.Command{
		Text:   "create company name: Acme Ltda, cnpj 12.345.678/0001-90",
		UserID: "u1",
	}, nil)

	assert.True(t, result.Success)
	assert.Equal(t, intent.CreateCompany, result.Intent)
	assert.Equal(t, 1, f.companies.calls)
	assert.Equal(t, "12345678000190", f.companies.lastReq.Params["cnpj"])
}

func TestRunDeniesAdminOnlyIntentWithoutCollaboratorCalls(t *testing.T) {
	f := newFixture(regularActors())

	result := f.orchestrator.Run(context.Background(), store.Command{
		Text:   "create company name: Acme",
		UserID: "u2",
	}, nil)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, 0, f.companies.calls)
	assert.Equal(t, 0, f.structured.calls)
	assert.Equal(t, 0, f.embedder.calls)
	assert.Equal(t, 0, f.memory.Len())
}

func TestRunRejectsEmptyAndOversizedWithoutCollaboratorCalls(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "oversized", text: strings.Repeat("x", 1001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(adminActors())

			result := f.orchestrator.Run(context.Background(), store.Command{
				Text:   tt.text,
				UserID: "u1",
			}, nil)

			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Error)
			assert.Equal(t, 0, f.companies.calls)
			assert.Equal(t, 0, f.structured.calls)
			assert.Equal(t, 0, f.embedder.calls)
		})
	}
}

func TestRunUnmatchedTextFallsBackToRetrieval(t *testing.T) {
	f := newFixture(adminActors())

	result := f.orchestrator.Run(context.Background(), store.Command{
		Text:   "tell me about companies working with solar energy",
		UserID: "u1",
	}, nil)

	assert.True(t, result.Success)
	assert.Equal(t, intent.QueryDatabase, result.Intent)
}

func TestRunHybridPlanFallsThroughToSemantic(t *testing.T) {
	resolver := &stubResolver{actors: adminActors()}
	structured := &emptyListStore{}
	embedder := &countingEmbedder{}
	mem := memory.NewStore()

	vectors := stubVectorStore{results: []*store.SimilarityResult{{
		EntityID:   "c9",
		EntityType: "companies",
		Excerpt:    "Acme Solar, a solar energy company working with renewable power",
		Score:      0.91,
	}}}
	engine := search.NewEngine(embedder, vectors, listerFromStore{store: &structured.countingStore}, nil)
	backend := &scriptedBackend{
		reply: `{"strategy": "hybrid", "queryType": "list", "entities": ["companies"], "confidence": 0.8}`,
	}

	orchestrator := NewOrchestrator(Deps{
		Supervisor:  supervisor.New(nil, nil),
		Classifier:  intent.NewClassifier(nil, nil),
		Permissions: permission.NewEvaluator(resolver, nil),
		Actors:      resolver,
		Collector:   contextinfo.NewCollector(resolver, nil),
		Planner:     planner.NewPlanner(backend, knowledge.NewBase(), nil),
		Queries:     action.NewQueryExecutor(structured, nil),
		Search:      engine,
		Dispatcher:  action.NewDispatcher(action.Collaborators{}, nil),
		Viz:         visualization.NewBuilder(),
		Composer:    response.NewComposer(),
		Suggestions: suggestion.NewGenerator(),
		Memory:      mem,
	})

	result := orchestrator.Run(context.Background(), store.Command{
		Text:   "companies similar to Acme Solar",
		UserID: "u1",
	}, nil)

	assert.True(t, result.Success)
	// The structured rung ran first, found nothing, and the semantic
	// rung produced the answer.
	assert.Equal(t, 1, structured.calls)
	assert.Equal(t, 1, embedder.calls)
	assert.Contains(t, result.Response, "Acme Solar")
}

func TestFinalizeAcceptsApprovedRewrite(t *testing.T) {
	backend := &scriptedBackend{reply: "There are 42 companies, and many more exist in your records."}
	o := NewOrchestrator(Deps{Supervisor: supervisor.New(backend, nil)})

	result := &store.ActionResult{Success: true, Data: []map[string]interface{}{{"name": "Acme"}}}
	cmdIntent := &store.Intent{Name: intent.QueryDatabase, Confidence: 0.9}

	text, verdict := o.finalize(context.Background(),
		"how many companies exist?",
		"the query counts rows in the companies table",
		result, nil, cmdIntent,
	)
	assert.True(t, verdict.Approved)
	assert.Equal(t, "There are 42 companies, and many more exist in your records.", text)
	assert.Equal(t, 1, backend.calls)
}

func TestFinalizeKeepsRejectionWhenBackendFails(t *testing.T) {
	backend := &scriptedBackend{err: fmt.Errorf("connection refused")}
	o := NewOrchestrator(Deps{Supervisor: supervisor.New(backend, nil)})

	result := &store.ActionResult{Success: true, Data: []map[string]interface{}{{"name": "Acme"}}}
	cmdIntent := &store.Intent{Name: intent.QueryDatabase, Confidence: 0.9}

	original := "the query counts rows in the companies table"
	text, verdict := o.finalize(context.Background(), "how many companies exist?", original, result, nil, cmdIntent)
	assert.False(t, verdict.Approved)
	assert.Equal(t, original, text)
	assert.Equal(t, 1, backend.calls)
}

func TestFinalizeDiscardsRewriteThatStillFails(t *testing.T) {
	backend := &scriptedBackend{reply: "the aggregation pipeline produced the result"}
	o := NewOrchestrator(Deps{Supervisor: supervisor.New(backend, nil)})

	result := &store.ActionResult{Success: true, Data: []map[string]interface{}{{"name": "Acme"}}}
	cmdIntent := &store.Intent{Name: intent.QueryDatabase, Confidence: 0.9}

	original := "the query counts rows in the companies table"
	text, verdict := o.finalize(context.Background(), "how many companies exist?", original, result, nil, cmdIntent)
	assert.False(t, verdict.Approved)
	assert.Equal(t, original, text)
	assert.Equal(t, 1, backend.calls)
}

func TestRunAppendsMemoryAcrossRuns(t *testing.T) {
	f := newFixture(adminActors())

	for i := 0; i < 3; i++ {
		result := f.orchestrator.Run(context.Background(), store.Command{
			Text:   "how many companies exist?",
			UserID: "u1",
		}, nil)
		assert.True(t, result.Success)
	}

	entries := f.memory.Recent(10)
	assert.Len(t, entries, 3)
	assert.Equal(t, intent.QueryDatabase, entries[0].Intent)
}

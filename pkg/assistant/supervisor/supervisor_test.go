package supervisor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/assistant/contextinfo"
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

func TestValidateInitial(t *testing.T) {
	s := New(nil, nil)

	tests := []struct {
		name         string
		text         string
		wantApproved bool
		wantScore    int
	}{
		{name: "normal command", text: "how many companies exist?", wantApproved: true, wantScore: 100},
		{name: "empty command", text: "", wantApproved: false, wantScore: 0},
		{name: "whitespace only", text: "   \n\t ", wantApproved: false, wantScore: 0},
		{name: "too long", text: strings.Repeat("a", 1001), wantApproved: false, wantScore: 50},
		{name: "exactly at limit", text: strings.Repeat("a", 1000), wantApproved: true, wantScore: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := s.ValidateInitial(tt.text)
			assert.Equal(t, tt.wantApproved, verdict.Approved)
			assert.Equal(t, tt.wantScore, verdict.QualityScore)
		})
	}
}

func TestValidateIntent(t *testing.T) {
	s := New(nil, nil)

	verdict := s.ValidateIntent(nil)
	assert.False(t, verdict.Approved)
	assert.Equal(t, 0, verdict.QualityScore)

	verdict = s.ValidateIntent(&store.Intent{Name: "query_database", Confidence: 0.4})
	assert.False(t, verdict.Approved)
	assert.Equal(t, 40, verdict.QualityScore)

	verdict = s.ValidateIntent(&store.Intent{Name: "query_database", Confidence: 0.95})
	assert.True(t, verdict.Approved)
	assert.Equal(t, 95, verdict.QualityScore)
}

func TestValidatePermissionNeverDisapproves(t *testing.T) {
	s := New(nil, nil)

	verdict := s.ValidatePermission(&store.PermissionDecision{Allowed: true})
	assert.True(t, verdict.Approved)
	assert.Equal(t, 100, verdict.QualityScore)

	verdict = s.ValidatePermission(&store.PermissionDecision{Allowed: false, Reason: "role too low"})
	assert.True(t, verdict.Approved)
	assert.Equal(t, 0, verdict.QualityScore)
	assert.Equal(t, "role too low", verdict.Reason)
}

func TestValidateContext(t *testing.T) {
	s := New(nil, nil)

	snapshot := &contextinfo.Snapshot{
		UserContext: map[string]interface{}{"role": "admin"},
	}
	assert.True(t, s.ValidateContext(snapshot).Approved)

	empty := &contextinfo.Snapshot{}
	verdict := s.ValidateContext(empty)
	assert.False(t, verdict.Approved)
	assert.Equal(t, 40, verdict.QualityScore)
}

func TestValidateRetrievalResult(t *testing.T) {
	s := New(nil, nil)

	tests := []struct {
		name         string
		result       *store.ActionResult
		wantApproved bool
		wantScore    int
	}{
		{name: "nil result", result: nil, wantApproved: false, wantScore: 0},
		{
			name:         "errored result",
			result:       &store.ActionResult{Error: "connection refused"},
			wantApproved: false,
			wantScore:    20,
		},
		{
			name:         "count result",
			result:       &store.ActionResult{Success: true, IsCount: true, Count: 12},
			wantApproved: true,
			wantScore:    90,
		},
		{
			name: "result with rows",
			result: &store.ActionResult{
				Success: true,
				Data:    []map[string]interface{}{{"name": "Acme"}},
			},
			wantApproved: true,
			wantScore:    90,
		},
		{
			name:         "summary only",
			result:       &store.ActionResult{Success: true, Summary: "3 groups of companies by sector"},
			wantApproved: true,
			wantScore:    70,
		},
		{
			name:         "nothing usable",
			result:       &store.ActionResult{Success: true, Data: []map[string]interface{}{}},
			wantApproved: false,
			wantScore:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := s.ValidateRetrievalResult(tt.result)
			assert.Equal(t, tt.wantApproved, verdict.Approved)
			assert.Equal(t, tt.wantScore, verdict.QualityScore)
		})
	}
}

func TestValidateActionResult(t *testing.T) {
	s := New(nil, nil)

	assert.False(t, s.ValidateActionResult(nil).Approved)

	verdict := s.ValidateActionResult(&store.ActionResult{Error: "duplicate cnpj"})
	assert.False(t, verdict.Approved)
	assert.Equal(t, 30, verdict.QualityScore)

	verdict = s.ValidateActionResult(&store.ActionResult{Success: true, Summary: "company created"})
	assert.True(t, verdict.Approved)
	assert.Equal(t, 90, verdict.QualityScore)
}

func TestValidateVisualizations(t *testing.T) {
	s := New(nil, nil)

	ok := []store.Visualization{
		{Type: store.VizCard, Data: map[string]interface{}{"value": 42}},
		{Type: store.VizTable, Config: map[string]interface{}{"columns": []string{"name"}}},
	}
	verdict := s.ValidateVisualizations(ok)
	assert.True(t, verdict.Approved)
	assert.Equal(t, 85, verdict.QualityScore)

	assert.True(t, s.ValidateVisualizations(nil).Approved)

	bad := []store.Visualization{{Title: "untyped"}}
	verdict = s.ValidateVisualizations(bad)
	assert.False(t, verdict.Approved)
	assert.Equal(t, 40, verdict.QualityScore)
	assert.NotEmpty(t, verdict.Issues)
}

func TestRelevanceScore(t *testing.T) {
	tests := []struct {
		name     string
		question string
		answer   string
		want     func(t *testing.T, score int)
	}{
		{
			name:     "implementation vocabulary is capped",
			question: "what are the top sectors?",
			answer:   "The query groups by sector and returns the aggregation.",
			want: func(t *testing.T, score int) {
				assert.LessOrEqual(t, score, 30)
			},
		},
		{
			name:     "process narration opener",
			question: "how many companies exist?",
			answer:   "Counting the rows in the companies table now.",
			want: func(t *testing.T, score int) {
				assert.Equal(t, 20, score)
			},
		},
		{
			name:     "direct answer scores high",
			question: "what is the average salary of employees?",
			answer:   "The average salary of your employees is 4830.50.",
			want: func(t *testing.T, score int) {
				assert.GreaterOrEqual(t, score, 70)
			},
		},
		{
			name:     "no domain keywords stays neutral",
			question: "thanks, that is all",
			answer:   "You are welcome.",
			want: func(t *testing.T, score int) {
				assert.Equal(t, 70, score)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, RelevanceScore(tt.question, tt.answer))
		})
	}
}

func TestValidateFinalRejectsMechanismTalk(t *testing.T) {
	s := New(nil, nil)

	cmdIntent := &store.Intent{Name: "query_database", Confidence: 0.95}
	verdict := s.ValidateFinal(
		"what are the top sectors?",
		"the query groups by sector",
		nil,
		nil,
		cmdIntent,
	)

	assert.False(t, verdict.Approved)
	assert.Less(t, verdict.QualityScore, 70)
}

func TestAttemptCorrectionReturnsTrimmedRewrite(t *testing.T) {
	backend := &scriptedBackend{reply: "  There are 42 companies, and more exist every month.  "}
	s := New(backend, nil)

	rewritten, err := s.AttemptCorrection(context.Background(),
		"how many companies exist?",
		"the query counts rows in the companies table",
		&store.QualityVerdict{Reason: "the response does not answer the question well enough"},
	)
	assert.NoError(t, err)
	assert.Equal(t, "There are 42 companies, and more exist every month.", rewritten)
	assert.Equal(t, 1, backend.calls)
}

func TestAttemptCorrectionFailsWhenBackendErrors(t *testing.T) {
	backend := &scriptedBackend{err: fmt.Errorf("connection refused")}
	s := New(backend, nil)

	_, err := s.AttemptCorrection(context.Background(), "how many companies exist?", "some answer", &store.QualityVerdict{})
	assert.Error(t, err)
	assert.Equal(t, 1, backend.calls)
}

func TestAttemptCorrectionFailsWithoutBackend(t *testing.T) {
	s := New(nil, nil)

	_, err := s.AttemptCorrection(context.Background(), "how many companies exist?", "some answer", &store.QualityVerdict{})
	assert.Error(t, err)
}

func TestValidateFinalRelaxedForNumericResults(t *testing.T) {
	s := New(nil, nil)

	result := &store.ActionResult{Success: true, IsCount: true, Count: 42, Summary: "42 companies"}
	cmdIntent := &store.Intent{Name: "query_database", Confidence: 0.95}

	verdict := s.ValidateFinal(
		"how many companies exist?",
		"There are 42 companies.",
		result,
		nil,
		cmdIntent,
	)

	assert.True(t, verdict.Approved)
	assert.GreaterOrEqual(t, verdict.QualityScore, 50)
}

package suggestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/store"
)

func TestSuggestSortsByRelevance(t *testing.T) {
	g := NewGenerator()
	cmdIntent := &store.Intent{Name: intent.ListCompanies}

	suggestions := g.Suggest("list companies", cmdIntent, nil, nil)
	assert.NotEmpty(t, suggestions)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Relevance, suggestions[i].Relevance)
	}
}

func TestSuggestCapsAtFive(t *testing.T) {
	g := NewGenerator()
	cmdIntent := &store.Intent{Name: intent.QueryDatabase}
	history := []store.ConversationEntry{
		{Intent: intent.CreateCompany, Timestamp: time.Now()},
	}
	result := &store.ActionResult{Success: true}

	suggestions := g.Suggest("how many companies", cmdIntent, result, history)
	assert.LessOrEqual(t, len(suggestions), 5)
}

func TestSuggestChainsOffHistory(t *testing.T) {
	g := NewGenerator()
	cmdIntent := &store.Intent{Name: "unknown_intent"}
	history := []store.ConversationEntry{
		{Intent: intent.CreateCompany, Timestamp: time.Now()},
	}

	suggestions := g.Suggest("thanks", cmdIntent, nil, history)
	assert.Len(t, suggestions, 1)
	assert.Contains(t, suggestions[0].Text, "dashboard")
	assert.Equal(t, 60, suggestions[0].Relevance)
}

func TestSuggestUnknownIntentWithoutHistory(t *testing.T) {
	g := NewGenerator()

	suggestions := g.Suggest("?", &store.Intent{Name: "something_else"}, nil, nil)
	assert.Empty(t, suggestions)
}

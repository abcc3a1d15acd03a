package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/store"
)

func TestNumericFieldsAreListedColumns(t *testing.T) {
	b := NewBase()

	for _, e := range b.Entities() {
		cols := make(map[string]bool, len(e.Columns))
		for _, c := range e.Columns {
			cols[c] = true
		}
		for _, f := range e.NumericFields {
			assert.True(t, cols[f], "%s.%s is not a listed column", e.Name, f)
		}
	}
}

func TestSuggestApproach(t *testing.T) {
	b := NewBase()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"count", "how many companies are registered?", store.QueryCount},
		{"aggregate", "what is the average salary of employees?", store.QueryAggregate},
		{"group", "companies by sector please", store.QueryGroupBy},
		{"time series", "company growth per month", store.QueryTimeSeries},
		{"cross entity", "companies without employees", store.QueryCrossEntity},
		{"cross entity beats count", "how many companies without employees", store.QueryCrossEntity},
		{"semantic", "find companies similar to Acme", store.StrategySemantic},
		{"list", "list all products", store.QueryList},
		{"no keyword", "tell me about wellness programs", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.SuggestApproach(tt.text))
		})
	}
}

func TestDetectEntitiesFollowsCatalogOrder(t *testing.T) {
	b := NewBase()

	assert.Equal(t, []string{"companies", "employees"}, b.DetectEntities("average employee count per company"))
	assert.Equal(t, []string{"prospects"}, b.DetectEntities("quantos leads temos?"))
	assert.Empty(t, b.DetectEntities("nothing relevant here"))
}

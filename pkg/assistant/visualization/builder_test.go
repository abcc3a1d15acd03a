package visualization

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/store"
)

func listRows(n int) []map[string]interface{} {
	rows := make([]map[string]interface{}, n)
	for i := range rows {
		rows[i] = map[string]interface{}{"name": fmt.Sprintf("Company %d", i), "sector": "tech"}
	}
	return rows
}

func TestCountResultBecomesCard(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{Success: true, IsCount: true, Count: 42, Summary: "42 companies"}

	vizs := b.Build(result, nil, "how many companies?")
	assert.Len(t, vizs, 1)
	assert.Equal(t, store.VizCard, vizs[0].Type)

	data := vizs[0].Data.(map[string]interface{})
	assert.Equal(t, int64(42), data["value"])
}

func TestAggregateResultBecomesCard(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{Success: true, IsAggregate: true, Data: 3520.75, Summary: "avg salary"}

	vizs := b.Build(result, nil, "average salary")
	assert.Len(t, vizs, 1)
	assert.Equal(t, store.VizCard, vizs[0].Type)
}

func TestGroupedResultBecomesChart(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{
		Success:     true,
		IsAggregate: true,
		IsGrouped:   true,
		Data: []map[string]interface{}{
			{"sector": "tech", "count": 12},
			{"sector": "retail", "count": 7},
			{"sector": "health", "count": 4},
		},
	}

	vizs := b.Build(result, nil, "companies by sector")
	assert.Len(t, vizs, 1)
	assert.Equal(t, store.VizChart, vizs[0].Type)
	// Three categories fit a pie.
	assert.Equal(t, "pie", vizs[0].Config["chartType"])
}

func TestTimeSeriesResultBecomesLineChart(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{
		Success:      true,
		IsTimeSeries: true,
		Data: []map[string]interface{}{
			{"period": "2026-01", "count": 3},
			{"period": "2026-02", "count": 5},
		},
	}

	vizs := b.Build(result, nil, "companies per month")
	assert.Len(t, vizs, 1)
	assert.Equal(t, store.VizChart, vizs[0].Type)
	assert.Equal(t, "line", vizs[0].Config["chartType"])
}

func TestGrowthQuestionsGetAreaCharts(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{
		Success:      true,
		IsTimeSeries: true,
		Data: []map[string]interface{}{
			{"period": "2026-01", "count": 3},
		},
	}

	vizs := b.Build(result, nil, "show prospect growth over the year")
	assert.Equal(t, "area", vizs[0].Config["chartType"])
}

func TestExplicitChartRequestWins(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{
		Success:   true,
		IsGrouped: true,
		IsAggregate: true,
		Data: []map[string]interface{}{
			{"sector": "tech", "count": 12},
			{"sector": "retail", "count": 7},
		},
	}

	vizs := b.Build(result, nil, "show a bar chart of companies by sector")
	assert.Equal(t, "bar", vizs[0].Config["chartType"])
}

func TestListBoundaryTenItemsIsTable(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{Success: true, Data: listRows(10)}

	vizs := b.Build(result, nil, "list companies")
	assert.Len(t, vizs, 1)
	assert.Equal(t, store.VizTable, vizs[0].Type)
}

func TestListBoundaryElevenItemsIsChart(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{Success: true, Data: listRows(11)}

	vizs := b.Build(result, nil, "list companies")
	assert.Len(t, vizs, 1)
	assert.Equal(t, store.VizChart, vizs[0].Type)
}

func TestSingleObjectBecomesFieldCards(t *testing.T) {
	b := NewBuilder()
	result := &store.ActionResult{Success: true, Data: map[string]interface{}{
		"name":   "Acme",
		"cnpj":   "12345678000190",
		"sector": "tech",
	}}

	vizs := b.Build(result, nil, "show company acme")
	assert.Len(t, vizs, 3)
	for _, v := range vizs {
		assert.Equal(t, store.VizCard, v.Type)
	}
}

func TestEmptyAndFailedResults(t *testing.T) {
	b := NewBuilder()

	assert.Empty(t, b.Build(nil, nil, "anything"))
	assert.Empty(t, b.Build(&store.ActionResult{Success: false, Error: "boom"}, nil, "anything"))
	assert.Empty(t, b.Build(&store.ActionResult{Success: true, Data: []map[string]interface{}{}}, nil, "anything"))
}

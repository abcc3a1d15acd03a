package visualization

import (
	"fmt"
	"sort"
	"strings"

	"opx-assistant-be/pkg/store"
)

// tableLimit is the largest list rendered as a table; longer lists
// become a chart.
const tableLimit = 10

// Builder converts a raw ActionResult into presentation shapes. It never
// errors: anything unusable yields an empty list.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build applies the decision order: count card, grouped chart, aggregate
// card, time-series chart, list table-or-chart, object card.
func (b *Builder) Build(result *store.ActionResult, cmdIntent *store.Intent, originalText string) []store.Visualization {
	if result == nil || !result.Success {
		return []store.Visualization{}
	}

	switch {
	case result.IsCount:
		return []store.Visualization{{
			Type:  store.VizCard,
			Title: "Total",
			Data: map[string]interface{}{
				"value": result.Count,
				"label": result.Summary,
			},
		}}

	case result.IsGrouped:
		rows := asRows(result.Data)
		if len(rows) == 0 {
			return []store.Visualization{}
		}
		chartType := detectChartType(originalText, rows, false)
		return []store.Visualization{chart(chartType, result.Summary, rows)}

	case result.IsAggregate:
		return []store.Visualization{{
			Type:  store.VizCard,
			Title: "Result",
			Data: map[string]interface{}{
				"value": result.Data,
				"label": result.Summary,
			},
		}}

	case result.IsTimeSeries:
		rows := asRows(result.Data)
		if len(rows) == 0 {
			return []store.Visualization{}
		}
		chartType := detectChartType(originalText, rows, true)
		return []store.Visualization{chart(chartType, result.Summary, rows)}
	}

	if rows := asRows(result.Data); rows != nil {
		if len(rows) == 0 {
			return []store.Visualization{}
		}
		if len(rows) <= tableLimit {
			return []store.Visualization{{
				Type:   store.VizTable,
				Title:  result.Summary,
				Data:   rows,
				Config: map[string]interface{}{"columns": columnsOf(rows[0])},
			}}
		}
		return []store.Visualization{chart(detectChartType(originalText, rows, false), result.Summary, rows)}
	}

	if obj, ok := result.Data.(map[string]interface{}); ok {
		return objectCards(obj)
	}

	return []store.Visualization{}
}

// objectCards renders a single record as one card per field.
func objectCards(obj map[string]interface{}) []store.Visualization {
	out := make([]store.Visualization, 0, len(obj))
	for _, key := range columnsOf(obj) {
		out = append(out, store.Visualization{
			Type:  store.VizCard,
			Title: key,
			Data: map[string]interface{}{
				"label": key,
				"value": obj[key],
			},
		})
	}
	return out
}

func chart(chartType, title string, rows []map[string]interface{}) store.Visualization {
	labelKey, valueKey := axisBindings(rows[0])
	return store.Visualization{
		Type:  store.VizChart,
		Title: title,
		Data:  rows,
		Config: map[string]interface{}{
			"chartType": chartType,
			"xAxis":     labelKey,
			"yAxis":     valueKey,
		},
	}
}

// detectChartType honors an explicit user request first, then falls back
// on the data shape: temporal rows get a line (area when the question is
// about growth), few categories get a pie, everything else a bar.
func detectChartType(originalText string, rows []map[string]interface{}, temporal bool) string {
	lower := strings.ToLower(originalText)

	switch {
	case strings.Contains(lower, "pie") || strings.Contains(lower, "pizza"):
		return "pie"
	case strings.Contains(lower, "area"):
		return "area"
	case strings.Contains(lower, "line") || strings.Contains(lower, "linha"):
		return "line"
	case strings.Contains(lower, "bar") || strings.Contains(lower, "barra"):
		return "bar"
	}

	if temporal || hasTemporalColumn(rows[0]) {
		if strings.Contains(lower, "growth") || strings.Contains(lower, "crescimento") {
			return "area"
		}
		return "line"
	}

	if len(rows) <= 6 {
		return "pie"
	}
	return "bar"
}

func hasTemporalColumn(row map[string]interface{}) bool {
	for key := range row {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "date") || strings.Contains(lower, "month") ||
			strings.Contains(lower, "period") || strings.Contains(lower, "_at") {
			return true
		}
	}
	return false
}

// axisBindings guesses which columns hold the label and the value.
func axisBindings(row map[string]interface{}) (string, string) {
	labelKey := ""
	valueKey := ""
	for _, key := range columnsOf(row) {
		switch row[key].(type) {
		case int, int32, int64, float32, float64:
			if valueKey == "" {
				valueKey = key
			}
		default:
			if labelKey == "" {
				labelKey = key
			}
		}
	}
	if labelKey == "" {
		labelKey = "label"
	}
	if valueKey == "" {
		valueKey = "value"
	}
	return labelKey, valueKey
}

// columnsOf returns the keys of a row in a stable order.
func columnsOf(row map[string]interface{}) []string {
	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	// Deterministic output matters for tests and rendering alike.
	sort.Strings(keys)
	return keys
}

// asRows normalizes the supported list payload shapes.
func asRows(data interface{}) []map[string]interface{} {
	switch v := data.(type) {
	case []map[string]interface{}:
		return v
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				rows = append(rows, m)
			} else {
				rows = append(rows, map[string]interface{}{"value": fmt.Sprintf("%v", item)})
			}
		}
		return rows
	case []*store.SimilarityResult:
		rows := make([]map[string]interface{}, 0, len(v))
		for _, r := range v {
			rows = append(rows, map[string]interface{}{
				"entity_type": r.EntityType,
				"excerpt":     r.Excerpt,
				"score":       r.Score,
			})
		}
		return rows
	default:
		return nil
	}
}

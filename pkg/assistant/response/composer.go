package response

import (
	"fmt"
	"strings"

	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/store"
)

// Reply is the composed user-facing answer with its voice settings.
type Reply struct {
	Text  string
	Voice store.VoiceConfig
}

// Composer produces the natural-language reply for one run. Templated by
// intent family; counts and entity names are interpolated. On action
// failure the error message is returned verbatim.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

func (c *Composer) Compose(originalText string, result *store.ActionResult, vizs []store.Visualization, cmdIntent *store.Intent) *Reply {
	return &Reply{
		Text:  c.text(result, cmdIntent),
		Voice: store.VoiceConfig{Speed: 1.0, Pitch: 1.0},
	}
}

func (c *Composer) text(result *store.ActionResult, cmdIntent *store.Intent) string {
	if result == nil {
		return "I could not process that request."
	}
	if !result.Success {
		if result.Error != "" {
			return result.Error
		}
		return "I could not process that request."
	}

	intentName := ""
	if cmdIntent != nil {
		intentName = cmdIntent.Name
	}

	if intent.IsRetrieval(intentName) || intentName == "" {
		return retrievalText(result)
	}

	entity := entityWord(intentName)
	switch family(intentName) {
	case "create":
		return fmt.Sprintf("Done. The %s was created successfully.", entity)
	case "update":
		return fmt.Sprintf("The %s was updated.", entity)
	case "delete":
		return fmt.Sprintf("The %s was removed.", entity)
	case "list", "find":
		return retrievalText(result)
	default:
		if result.Summary != "" {
			return result.Summary
		}
		return "Done."
	}
}

func retrievalText(result *store.ActionResult) string {
	switch {
	case result.IsCount:
		if result.Summary != "" {
			return fmt.Sprintf("There are %s.", result.Summary)
		}
		return fmt.Sprintf("There are %d records.", result.Count)

	case result.IsGrouped:
		rows := groupedRows(result.Data)
		if len(rows) == 0 {
			return "I did not find any groups for that."
		}
		return "Here is the breakdown: " + joinGroups(rows) + "."

	case result.IsAggregate:
		if value, ok := result.Data.(float64); ok {
			return fmt.Sprintf("The calculated value is %.2f.", value)
		}
		return "Here is the calculated result."

	case result.IsTimeSeries:
		rows := groupedRows(result.Data)
		return fmt.Sprintf("Here is the evolution over time, with %d periods.", len(rows))
	}

	if matches, ok := result.Data.([]*store.SimilarityResult); ok {
		if len(matches) == 0 {
			return "I did not find any matching records."
		}
		if excerpt := strings.TrimSpace(matches[0].Excerpt); excerpt != "" {
			return fmt.Sprintf("I found %d related records. The closest match: %s", len(matches), excerpt)
		}
		return fmt.Sprintf("I found %d related records.", len(matches))
	}

	if rows := groupedRows(result.Data); rows != nil {
		if len(rows) == 0 {
			return "I did not find any matching records."
		}
		names := leadingNames(rows, 3)
		if len(names) > 0 {
			return fmt.Sprintf("I found %d records, including %s.", len(rows), strings.Join(names, ", "))
		}
		return fmt.Sprintf("I found %d records.", len(rows))
	}

	if result.Summary != "" {
		return result.Summary
	}
	return "Here is what I found."
}

// family extracts the verb of an intent name (create_company -> create).
func family(intentName string) string {
	if i := strings.Index(intentName, "_"); i > 0 {
		return intentName[:i]
	}
	return intentName
}

// entityWord extracts a speakable entity name (create_company -> company).
func entityWord(intentName string) string {
	if i := strings.Index(intentName, "_"); i > 0 && i+1 < len(intentName) {
		return strings.ReplaceAll(intentName[i+1:], "_", " ")
	}
	return "record"
}

func groupedRows(data interface{}) []map[string]interface{} {
	switch v := data.(type) {
	case []map[string]interface{}:
		return v
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				rows = append(rows, m)
			}
		}
		return rows
	default:
		return nil
	}
}

func joinGroups(rows []map[string]interface{}) string {
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		label := firstString(row)
		count := firstNumber(row)
		if label == "" {
			continue
		}
		if count != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", label, count))
		} else {
			parts = append(parts, label)
		}
		if len(parts) == 5 {
			break
		}
	}
	return strings.Join(parts, ", ")
}

func leadingNames(rows []map[string]interface{}, n int) []string {
	names := make([]string, 0, n)
	for _, row := range rows {
		for _, key := range []string{"name", "company_name", "title"} {
			if v, ok := row[key].(string); ok && v != "" {
				names = append(names, v)
				break
			}
		}
		if len(names) == n {
			break
		}
	}
	return names
}

func firstString(row map[string]interface{}) string {
	for _, key := range []string{"sector", "name", "label", "category", "status", "period"} {
		if v, ok := row[key].(string); ok && v != "" {
			return v
		}
	}
	for _, v := range row {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(row map[string]interface{}) string {
	for _, key := range []string{"count", "total", "value"} {
		switch v := row[key].(type) {
		case int:
			return fmt.Sprintf("%d", v)
		case int64:
			return fmt.Sprintf("%d", v)
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

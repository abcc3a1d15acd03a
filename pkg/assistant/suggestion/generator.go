package suggestion

import (
	"sort"

	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/store"
)

// maxSuggestions caps what one run proposes.
const maxSuggestions = 5

// patternTable maps an intent to its canned follow-ups. Relevance is a
// static ranking weight, not a probability.
var patternTable = map[string][]store.Suggestion{
	intent.CreateCompany: {
		{Text: "Add employees to the new company", Intent: intent.CreateEmployee, Relevance: 90},
		{Text: "List all registered companies", Intent: intent.ListCompanies, Relevance: 70},
		{Text: "Check how many companies you have now", Intent: intent.QueryDatabase, Relevance: 50},
	},
	intent.ListCompanies: {
		{Text: "See companies grouped by sector", Intent: intent.QueryDatabase, Relevance: 80},
		{Text: "Find a specific company by name or CNPJ", Intent: intent.FindCompany, Relevance: 70},
		{Text: "Register a new company", Intent: intent.CreateCompany, Relevance: 50},
	},
	intent.CreateEmployee: {
		{Text: "List the employees of this company", Intent: intent.ListEmployees, Relevance: 85},
		{Text: "Check the average salary", Intent: intent.QueryDatabase, Relevance: 60},
	},
	intent.ListEmployees: {
		{Text: "Check the average salary", Intent: intent.QueryDatabase, Relevance: 75},
		{Text: "Add a new employee", Intent: intent.CreateEmployee, Relevance: 60},
	},
	intent.CreateProspect: {
		{Text: "List your open prospects", Intent: intent.ListProspects, Relevance: 85},
		{Text: "Start a campaign for new prospects", Intent: intent.CreateCampaign, Relevance: 60},
	},
	intent.ListProspects: {
		{Text: "See prospect growth per month", Intent: intent.QueryDatabase, Relevance: 75},
		{Text: "Add a new prospect", Intent: intent.CreateProspect, Relevance: 55},
	},
	intent.CreateCampaign: {
		{Text: "List your campaigns", Intent: intent.ListCampaigns, Relevance: 80},
	},
	intent.QueryDatabase: {
		{Text: "See the result as a chart", Intent: intent.QueryDatabase, Relevance: 70},
		{Text: "List the underlying records", Intent: intent.ListCompanies, Relevance: 55},
		{Text: "Compare with the previous period", Intent: intent.QueryDatabase, Relevance: 50},
	},
	intent.GetAllData: {
		{Text: "Search for a specific record", Intent: intent.QueryDatabase, Relevance: 70},
	},
}

// chainTable proposes follow-ups keyed by the PREVIOUS command's intent,
// inspected from the most recent history entry.
var chainTable = map[string]store.Suggestion{
	intent.CreateCompany:  {Text: "Review the dashboard for the new company", Intent: intent.QueryDatabase, Relevance: 60},
	intent.CreateEmployee: {Text: "Assign benefits to the new employee", Intent: intent.ListBenefits, Relevance: 60},
	intent.CreateProspect: {Text: "Schedule a follow-up with this prospect", Intent: intent.ListProspects, Relevance: 60},
}

// Generator proposes follow-up actions from the current intent and the
// tail of the conversation history.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Suggest returns at most five suggestions, sorted by descending
// relevance. Never fails; unknown intents just yield fewer entries.
func (g *Generator) Suggest(text string, cmdIntent *store.Intent, result *store.ActionResult, history []store.ConversationEntry) []store.Suggestion {
	out := make([]store.Suggestion, 0, maxSuggestions)

	if cmdIntent != nil {
		out = append(out, patternTable[cmdIntent.Name]...)
	}

	// Chain off the previous command when it has a registered follow-up.
	if len(history) > 0 {
		last := history[len(history)-1]
		if chained, ok := chainTable[last.Intent]; ok {
			out = append(out, chained)
		}
	}

	// Empty retrieval results invite a broader look.
	if result != nil && result.Success && result.Count == 0 && result.Data == nil && cmdIntent != nil && intent.IsRetrieval(cmdIntent.Name) {
		out = append(out, store.Suggestion{
			Text:      "Show everything that is registered",
			Intent:    intent.GetAllData,
			Relevance: 40,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Relevance > out[j].Relevance
	})

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

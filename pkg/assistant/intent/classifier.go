package intent

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"opx-assistant-be/pkg/llm"
	"opx-assistant-be/pkg/store"
)

// Intent names understood by the pipeline. query_database is the generic
// retrieval intent every unmatched command falls back to.
const (
	QueryDatabase = "query_database"
	GetAllData    = "get_all_data"

	CreateCompany = "create_company"
	UpdateCompany = "update_company"
	DeleteCompany = "delete_company"
	FindCompany   = "find_company"
	ListCompanies = "list_companies"

	CreateEmployee = "create_employee"
	UpdateEmployee = "update_employee"
	DeleteEmployee = "delete_employee"
	ListEmployees  = "list_employees"

	CreateProspect = "create_prospect"
	ListProspects  = "list_prospects"

	CreateCampaign = "create_campaign"
	ListCampaigns  = "list_campaigns"

	CreateBenefit = "create_benefit"
	ListBenefits  = "list_benefits"

	CreateProduct = "create_product"
	ListProducts  = "list_products"

	SyncIntegration = "sync_integration"
	TestConnection  = "test_connection"
)

// IsRetrieval reports whether an intent is answered by the retrieval
// path (query planner + search) instead of a domain action.
func IsRetrieval(name string) bool {
	return name == QueryDatabase || name == GetAllData
}

// Confidence tiers of the ordered matching policy.
const (
	confidenceAnalytical = 0.95
	confidenceAggregate  = 0.9
	confidencePhrase     = 0.8
	confidenceDefault    = 0.6
)

// First-match-wins vocabulary for the high-confidence analytical shapes.
var temporalComparisonVocab = []string{
	"compare", "compared to", "comparison", "which period had more",
	"which month had more", "growth", "stagnation", "crescimento",
	"comparar", "qual periodo",
}

var negatedRelationshipVocab = []string{
	"without employees", "with no employees", "no employees",
	"sem funcionarios", "sem funcionários", "without any employees",
}

var aggregationVocab = []string{
	"how many", "count", "average", "media", "média", "total",
	"quantas", "quantos", "chart", "grafico", "gráfico", "trend",
	"distribution", "distribuicao", "maximum", "minimum", "highest",
	"lowest", "top ",
}

type phrasePattern struct {
	intent  string
	phrases []string
}

// Exact-phrase table for the supported domain actions. Order within the
// table matters only when phrases overlap; keep the more specific first.
var phraseTable = []phrasePattern{
	{CreateCompany, []string{"create company", "create a company", "register company", "register a company", "new company", "cadastrar empresa", "criar empresa"}},
	{UpdateCompany, []string{"update company", "update the company", "edit company", "atualizar empresa"}},
	{DeleteCompany, []string{"delete company", "delete the company", "remove company", "excluir empresa"}},
	{FindCompany, []string{"find company", "find the company", "show company", "open company", "buscar empresa"}},
	{ListCompanies, []string{"list companies", "list all companies", "show companies", "show all companies", "listar empresas"}},

	{CreateEmployee, []string{"create employee", "add employee", "register employee", "cadastrar funcionario"}},
	{UpdateEmployee, []string{"update employee", "edit employee", "atualizar funcionario"}},
	{DeleteEmployee, []string{"delete employee", "remove employee", "excluir funcionario"}},
	{ListEmployees, []string{"list employees", "show employees", "show all employees", "listar funcionarios"}},

	{CreateProspect, []string{"create prospect", "add prospect", "register prospect", "add lead", "cadastrar prospect"}},
	{ListProspects, []string{"list prospects", "show prospects", "list leads", "listar prospects"}},

	{CreateCampaign, []string{"create campaign", "new campaign", "start campaign", "criar campanha"}},
	{ListCampaigns, []string{"list campaigns", "show campaigns", "listar campanhas"}},

	{CreateBenefit, []string{"create benefit", "add benefit", "cadastrar beneficio"}},
	{ListBenefits, []string{"list benefits", "show benefits", "listar beneficios"}},

	{CreateProduct, []string{"create product", "add product", "cadastrar produto"}},
	{ListProducts, []string{"list products", "show products", "listar produtos"}},

	{SyncIntegration, []string{"sync integration", "synchronize integration", "run sync", "sincronizar integracao"}},
	{TestConnection, []string{"test connection", "check connection", "testar conexao"}},

	{GetAllData, []string{"all registered data", "everything registered", "all data", "todos os dados"}},
}

// Classifier maps free text to a symbolic intent plus extracted
// parameters. Classification never fails; the generic retrieval intent
// is the floor. The completion backend, when present, only refines
// default-confidence results.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify applies the ordered matching policy, first match wins:
// temporal comparison, negated relationship, aggregation vocabulary,
// exact phrase table, generic retrieval fallback.
func (c *Classifier) Classify(ctx context.Context, text string, userID string) *store.Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	params := ExtractParams(text)
	params["user_id"] = userID

	if matchesAny(lower, temporalComparisonVocab) {
		params["analysis"] = "temporal_comparison"
		return &store.Intent{Name: QueryDatabase, Params: params, Confidence: confidenceAnalytical}
	}

	if matchesAny(lower, negatedRelationshipVocab) {
		params["analysis"] = "negated_relationship"
		return &store.Intent{Name: QueryDatabase, Params: params, Confidence: confidenceAnalytical}
	}

	if matchesAny(lower, aggregationVocab) {
		params["analysis"] = "aggregation"
		return &store.Intent{Name: QueryDatabase, Params: params, Confidence: confidenceAggregate}
	}

	for _, pattern := range phraseTable {
		if matchesAny(lower, pattern.phrases) {
			return &store.Intent{Name: pattern.intent, Params: params, Confidence: confidencePhrase}
		}
	}

	fallback := &store.Intent{Name: QueryDatabase, Params: params, Confidence: confidenceDefault}
	if refined := c.refine(ctx, text, params); refined != nil {
		return refined
	}
	return fallback
}

// refine asks the completion backend to classify an unmatched command.
// Any failure or unknown answer keeps the heuristic fallback.
func (c *Classifier) refine(ctx context.Context, text string, params map[string]interface{}) *store.Intent {
	if c.llmProvider == nil {
		return nil
	}

	prompt := buildClassificationPrompt(text)
	raw, err := c.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithJSONResponse(),
	)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[INTENT] LLM refinement unavailable: %v", err)
		}
		return nil
	}

	var parsed struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil
	}
	if !knownIntent(parsed.Intent) {
		return nil
	}
	// Refinement never outranks the phrase table.
	if parsed.Confidence <= 0 || parsed.Confidence > confidencePhrase {
		parsed.Confidence = confidencePhrase
	}
	return &store.Intent{Name: parsed.Intent, Params: params, Confidence: parsed.Confidence}
}

func buildClassificationPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<task>\nClassify the user command into one of the known intents.\n</task>\n\n")
	sb.WriteString("<intents>\n")
	for _, p := range phraseTable {
		sb.WriteString(p.intent)
		sb.WriteString("\n")
	}
	sb.WriteString(QueryDatabase)
	sb.WriteString("\n</intents>\n\n<command>\n")
	sb.WriteString(text)
	sb.WriteString("\n</command>\n\nAnswer with JSON only: {\"intent\": \"...\", \"confidence\": 0.0}")
	return sb.String()
}

func knownIntent(name string) bool {
	if IsRetrieval(name) {
		return true
	}
	for _, p := range phraseTable {
		if p.intent == name {
			return true
		}
	}
	return false
}

func matchesAny(text string, vocab []string) bool {
	for _, phrase := range vocab {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// extractJSON pulls the outermost JSON object out of a model reply that
// may be wrapped in prose or code fences.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

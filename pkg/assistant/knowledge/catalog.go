package knowledge

import (
	"strings"

	"opx-assistant-be/pkg/store"
)

// Entity describes one retrievable table: its columns, which of them are
// numeric (aggregation targets; always a subset of Columns, and only
// columns the analytical store serves), and how it relates to the others.
type Entity struct {
	Name          string
	Description   string
	Columns       []string
	NumericFields []string
	Relationships []string
}

// Base is the static description of everything the planner is allowed to
// retrieve. Read-only after construction, safe for concurrent use.
type Base struct {
	entities map[string]Entity
	order    []string
}

func NewBase() *Base {
	b := &Base{entities: make(map[string]Entity)}

	b.register(Entity{
		Name:          "companies",
		Description:   "Registered client companies",
		Columns:       []string{"id", "name", "cnpj", "sector", "city", "state", "status", "created_at"},
		Relationships: []string{"employees.company_id -> companies.id", "benefits via company_benefits"},
	})
	b.register(Entity{
		Name:          "employees",
		Description:   "Employees of client companies",
		Columns:       []string{"id", "company_id", "name", "cpf", "email", "position", "salary", "created_at"},
		NumericFields: []string{"salary"},
		Relationships: []string{"employees.company_id -> companies.id"},
	})
	b.register(Entity{
		Name:        "prospects",
		Description: "Prospecting targets not yet converted to companies",
		Columns:     []string{"id", "company_name", "cnpj", "sector", "status", "source", "created_at"},
	})
	b.register(Entity{
		Name:          "campaigns",
		Description:   "Marketing and prospecting campaigns",
		Columns:       []string{"id", "name", "status", "budget", "starts_at", "ends_at", "created_at"},
		NumericFields: []string{"budget"},
	})
	b.register(Entity{
		Name:          "benefits",
		Description:   "Benefit plans offered to companies",
		Columns:       []string{"id", "name", "category", "monthly_cost", "created_at"},
		NumericFields: []string{"monthly_cost"},
	})
	b.register(Entity{
		Name:          "products",
		Description:   "Products in the sales catalog",
		Columns:       []string{"id", "name", "category", "price", "active", "created_at"},
		NumericFields: []string{"price"},
	})
	b.register(Entity{
		Name:        "data_embeddings",
		Description: "Vectorized text chunks of the entities above, used for semantic retrieval",
		Columns:     []string{"id", "entity_type", "entity_id", "document", "embedding_value", "metadata", "created_at"},
	})

	return b
}

func (b *Base) register(e Entity) {
	b.entities[e.Name] = e
	b.order = append(b.order, e.Name)
}

func (b *Base) Entity(name string) (Entity, bool) {
	e, ok := b.entities[name]
	return e, ok
}

func (b *Base) HasEntity(name string) bool {
	_, ok := b.entities[name]
	return ok
}

func (b *Base) Entities() []Entity {
	out := make([]Entity, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.entities[name])
	}
	return out
}

// Technologies lists the retrieval strategies available to plans.
func (b *Base) Technologies() []string {
	return []string{store.StrategyStructured, store.StrategySemantic, store.StrategyHybrid}
}

// SchemaText renders the catalog for inclusion in planner prompts.
func (b *Base) SchemaText() string {
	var sb strings.Builder
	sb.WriteString("<schema>\n")
	for _, name := range b.order {
		e := b.entities[name]
		sb.WriteString("  <table name=\"")
		sb.WriteString(e.Name)
		sb.WriteString("\">\n")
		sb.WriteString("    description: ")
		sb.WriteString(e.Description)
		sb.WriteString("\n    columns: ")
		sb.WriteString(strings.Join(e.Columns, ", "))
		sb.WriteString("\n")
		if len(e.NumericFields) > 0 {
			sb.WriteString("    numeric: ")
			sb.WriteString(strings.Join(e.NumericFields, ", "))
			sb.WriteString("\n")
		}
		for _, rel := range e.Relationships {
			sb.WriteString("    relation: ")
			sb.WriteString(rel)
			sb.WriteString("\n")
		}
		sb.WriteString("  </table>\n")
	}
	sb.WriteString("</schema>")
	return sb.String()
}

// entitySynonyms maps free-text vocabulary to catalog entity names.
var entitySynonyms = map[string]string{
	"company":      "companies",
	"companies":    "companies",
	"empresa":      "companies",
	"empresas":     "companies",
	"employee":     "employees",
	"employees":    "employees",
	"funcionario":  "employees",
	"funcionarios": "employees",
	"prospect":     "prospects",
	"prospects":    "prospects",
	"lead":         "prospects",
	"leads":        "prospects",
	"campaign":     "campaigns",
	"campaigns":    "campaigns",
	"campanha":     "campaigns",
	"campanhas":    "campaigns",
	"benefit":      "benefits",
	"benefits":     "benefits",
	"beneficio":    "benefits",
	"beneficios":   "benefits",
	"product":      "products",
	"products":     "products",
	"produto":      "products",
	"produtos":     "products",
}

// DetectEntities returns the catalog entities a text refers to, in
// catalog order. Empty when nothing matches.
func (b *Base) DetectEntities(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	for word, entity := range entitySynonyms {
		if strings.Contains(lower, word) {
			seen[entity] = true
		}
	}

	out := make([]string, 0, len(seen))
	for _, name := range b.order {
		if seen[name] {
			out = append(out, name)
		}
	}
	return out
}

// SuggestApproach maps free text to the query shape the heuristic
// planner should build. Search-flavored text suggests the semantic
// strategy instead of a structured shape; empty means no keyword
// matched at all.
func (b *Base) SuggestApproach(text string) string {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "without employees", "sem funcionarios", "no employees"):
		return store.QueryCrossEntity
	case containsAny(lower, "how many", "quantas", "quantos", "count of", "number of"):
		return store.QueryCount
	case containsAny(lower, "average", "media", "média"):
		return store.QueryAggregate
	case containsAny(lower, "per sector", "by sector", "top sectors", "por setor", "sectors"):
		return store.QueryGroupBy
	case containsAny(lower, "per month", "por mes", "growth", "crescimento", "over time", "trend", "period", "periodo", "chart", "grafico"):
		return store.QueryTimeSeries
	case containsAny(lower, "find", "search", "look for", "buscar", "procurar", "similar"):
		return store.StrategySemantic
	case containsAny(lower, "list", "show all", "listar"):
		return store.QueryList
	default:
		return ""
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package supervisor

import "strings"

// implementationVocab marks answers that leak internal mechanism to
// the user. Any hit caps the relevance score hard.
var implementationVocab = []string{
	"query",
	"aggregation",
	"aggregate function",
	"embedding",
	"group by",
	"sql",
	"vector search",
}

// processOpeners mark answers that narrate the pipeline instead of
// answering, e.g. "Counting the rows in ...".
var processOpeners = []string{
	"the query",
	"counting the",
	"searching the",
	"searching for",
	"executing",
	"calculating the",
	"running the",
}

// domainKeywords are the business terms a CRM question is expected to
// share with its answer.
var domainKeywords = []string{
	"company", "companies", "empresa", "empresas",
	"employee", "employees", "funcionario", "funcionarios",
	"prospect", "prospects", "campaign", "campaigns",
	"benefit", "benefits", "product", "products",
	"sector", "sectors", "setor",
	"average", "media", "salary", "salario",
	"total", "growth", "period", "month", "exist",
}

// RelevanceScore rates how directly an answer addresses a question,
// from 0 to 100. Implementation jargon and process narration are
// penalized before any vocabulary matching happens.
func RelevanceScore(question, answer string) int {
	q := strings.ToLower(question)
	a := strings.ToLower(answer)

	for _, term := range implementationVocab {
		if strings.Contains(a, term) {
			return 25
		}
	}
	for _, opener := range processOpeners {
		if strings.HasPrefix(strings.TrimSpace(a), opener) {
			return 20
		}
	}

	keywordScore, keywordsFound := keywordOverlap(q, a)
	if !keywordsFound {
		// Nothing domain-specific to anchor on: stay neutral.
		return 70
	}
	wordScore := wordOverlap(q, a)

	return int(0.6*float64(keywordScore) + 0.4*float64(wordScore))
}

// keywordOverlap returns the share of domain keywords from the
// question that also appear in the answer, and whether the question
// contained any at all.
func keywordOverlap(question, answer string) (int, bool) {
	var inQuestion, matched int
	for _, kw := range domainKeywords {
		if !strings.Contains(question, kw) {
			continue
		}
		inQuestion++
		if strings.Contains(answer, kw) {
			matched++
		}
	}
	if inQuestion == 0 {
		return 0, false
	}
	return matched * 100 / inQuestion, true
}

// wordOverlap returns the share of significant question words (longer
// than three characters) that reappear in the answer.
func wordOverlap(question, answer string) int {
	words := strings.FieldsFunc(question, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	var significant, matched int
	for _, w := range words {
		if len(w) <= 3 {
			continue
		}
		significant++
		if strings.Contains(answer, w) {
			matched++
		}
	}
	if significant == 0 {
		return 0
	}
	return matched * 100 / significant
}

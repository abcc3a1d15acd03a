package supervisor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"opx-assistant-be/pkg/assistant/contextinfo"
	"opx-assistant-be/pkg/llm"
	"opx-assistant-be/pkg/store"
)

// maxCommandLength is the longest raw command accepted by the pipeline.
const maxCommandLength = 1000

// minIntentConfidence is the floor below which a classification is
// never approved.
const minIntentConfidence = 0.5

// Final-check approval thresholds. Numeric results read terse, so
// count/aggregate shapes get the relaxed bar.
const (
	finalThreshold        = 70
	finalThresholdNumeric = 50
)

// Supervisor validates the output of every pipeline stage against a
// quality rubric. It holds no per-run state; one instance serves all
// concurrent runs.
type Supervisor struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func New(llmProvider llm.LLMProvider, logger *log.Logger) *Supervisor {
	return &Supervisor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// ValidateInitial gates the raw command text.
func (s *Supervisor) ValidateInitial(text string) *store.QualityVerdict {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: 0,
			Reason:       "the command is empty",
		}
	}
	if utf8.RuneCountInString(text) > maxCommandLength {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: 50,
			Reason:       fmt.Sprintf("the command exceeds %d characters", maxCommandLength),
		}
	}
	return &store.QualityVerdict{Approved: true, QualityScore: 100}
}

// ValidateIntent requires a resolved intent name and enough confidence.
func (s *Supervisor) ValidateIntent(cmdIntent *store.Intent) *store.QualityVerdict {
	if cmdIntent == nil || cmdIntent.Name == "" {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: 0,
			Reason:       "no intent could be resolved",
		}
	}

	score := int(cmdIntent.Confidence * 100)
	if cmdIntent.Confidence < minIntentConfidence {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: score,
			Reason:       "intent confidence is too low",
		}
	}
	return &store.QualityVerdict{Approved: true, QualityScore: score}
}

// ValidatePermission never disapproves: the decision itself cannot be
// "invalid". The orchestrator aborts on allowed=false regardless.
func (s *Supervisor) ValidatePermission(decision *store.PermissionDecision) *store.QualityVerdict {
	verdict := &store.QualityVerdict{Approved: true, QualityScore: 100}
	if decision == nil || !decision.Allowed {
		verdict.QualityScore = 0
		if decision != nil {
			verdict.Reason = decision.Reason
		}
	}
	return verdict
}

// ValidateContext is a soft gate: disapproval is advisory only.
func (s *Supervisor) ValidateContext(snapshot *contextinfo.Snapshot) *store.QualityVerdict {
	if snapshot != nil && snapshot.HasAny() {
		return &store.QualityVerdict{Approved: true, QualityScore: 80}
	}
	return &store.QualityVerdict{
		Approved:     false,
		QualityScore: 40,
		Reason:       "no usable context was collected",
	}
}

// ValidateRetrievalResult gates the outcome of the retrieval path.
// Count-style results are accepted immediately; anything else needs
// rows or at least a summary.
func (s *Supervisor) ValidateRetrievalResult(result *store.ActionResult) *store.QualityVerdict {
	if result == nil {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: 0,
			Reason:       "retrieval produced no result",
		}
	}
	if result.Error != "" {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: 20,
			Reason:       result.Error,
		}
	}
	if result.IsCount {
		return &store.QualityVerdict{Approved: true, QualityScore: 90}
	}
	if hasRows(result.Data) {
		return &store.QualityVerdict{Approved: true, QualityScore: 90}
	}
	if result.Summary != "" {
		return &store.QualityVerdict{Approved: true, QualityScore: 70}
	}
	return &store.QualityVerdict{
		Approved:     false,
		QualityScore: 50,
		Reason:       "retrieval returned nothing usable",
	}
}

// ValidateActionResult gates a domain mutation outcome.
func (s *Supervisor) ValidateActionResult(result *store.ActionResult) *store.QualityVerdict {
	if result == nil {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: 0,
			Reason:       "the action produced no result",
		}
	}
	if result.Error != "" {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: 30,
			Reason:       result.Error,
		}
	}
	if result.Success {
		return &store.QualityVerdict{Approved: true, QualityScore: 90}
	}
	return &store.QualityVerdict{
		Approved:     false,
		QualityScore: 50,
		Reason:       "the action did not complete",
	}
}

// ValidateVisualizations is a soft gate: every entry must carry a type
// and either data or config. An empty list is fine.
func (s *Supervisor) ValidateVisualizations(vizs []store.Visualization) *store.QualityVerdict {
	var issues []string
	for i, v := range vizs {
		if v.Type == "" {
			issues = append(issues, fmt.Sprintf("visualization %d has no type", i))
			continue
		}
		if v.Data == nil && len(v.Config) == 0 {
			issues = append(issues, fmt.Sprintf("visualization %d carries neither data nor config", i))
		}
	}

	if len(issues) > 0 {
		return &store.QualityVerdict{
			Approved:     false,
			QualityScore: 40,
			Reason:       "malformed visualizations",
			Issues:       issues,
		}
	}
	return &store.QualityVerdict{Approved: true, QualityScore: 85}
}

// ValidateFinal checks the assembled response holistically: text
// presence, textual relevance to the question, and structural
// completeness, averaged into one score.
func (s *Supervisor) ValidateFinal(originalText, responseText string, result *store.ActionResult, vizs []store.Visualization, cmdIntent *store.Intent) *store.QualityVerdict {
	textScore := 0
	if strings.TrimSpace(responseText) != "" {
		textScore = 80
	}

	relevance := RelevanceScore(originalText, responseText)

	completeness := 0
	if strings.TrimSpace(responseText) != "" {
		completeness += 30
	}
	if len(vizs) > 0 {
		completeness += 30
	}
	if result != nil {
		completeness += 20
	}
	if cmdIntent != nil && cmdIntent.Name != "" {
		completeness += 20
	}

	score := (textScore + relevance + completeness) / 3

	threshold := finalThreshold
	if result != nil && (result.IsCount || result.IsAggregate || result.IsTimeSeries || result.IsGrouped) {
		threshold = finalThresholdNumeric
	}

	verdict := &store.QualityVerdict{
		Approved:     score >= threshold,
		QualityScore: score,
	}
	if !verdict.Approved {
		verdict.Reason = "the response does not answer the question well enough"
		verdict.Issues = []string{
			fmt.Sprintf("text presence %d", textScore),
			fmt.Sprintf("relevance %d", relevance),
			fmt.Sprintf("completeness %d", completeness),
		}
	}
	return verdict
}

// AttemptCorrection asks the completion backend to rewrite a rejected
// response once. The caller re-validates the rewrite; an unreachable
// backend fails the correction.
func (s *Supervisor) AttemptCorrection(ctx context.Context, originalText, responseText string, verdict *store.QualityVerdict) (string, error) {
	if s.llmProvider == nil {
		return "", fmt.Errorf("no completion backend for correction")
	}

	var sb strings.Builder
	sb.WriteString("<task>\nRewrite the assistant answer so it directly answers the user question in plain language.\n")
	sb.WriteString("Do not mention queries, databases or any internal mechanism. Keep every number and name intact.\n</task>\n\n")
	sb.WriteString("<question>\n")
	sb.WriteString(originalText)
	sb.WriteString("\n</question>\n\n<answer>\n")
	sb.WriteString(responseText)
	sb.WriteString("\n</answer>\n\nRespond with the rewritten answer only.")

	rewritten, err := s.llmProvider.Generate(ctx, sb.String(), llm.WithTemperature(0.3))
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("[SUPERVISOR] correction rewrite failed: %v", err)
		}
		return "", fmt.Errorf("correction rewrite: %w", err)
	}
	return strings.TrimSpace(rewritten), nil
}

func hasRows(data interface{}) bool {
	switch v := data.(type) {
	case nil:
		return false
	case []map[string]interface{}:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	case []*store.SimilarityResult:
		return len(v) > 0
	default:
		// A scalar payload still counts as data.
		return true
	}
}

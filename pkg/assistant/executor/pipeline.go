package executor

import (
	"context"
	"log"
	"time"

	"opx-assistant-be/pkg/assistant/action"
	"opx-assistant-be/pkg/assistant/contextinfo"
	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/assistant/memory"
	"opx-assistant-be/pkg/assistant/permission"
	"opx-assistant-be/pkg/assistant/planner"
	"opx-assistant-be/pkg/assistant/response"
	"opx-assistant-be/pkg/assistant/search"
	"opx-assistant-be/pkg/assistant/suggestion"
	"opx-assistant-be/pkg/assistant/supervisor"
	"opx-assistant-be/pkg/assistant/visualization"
	"opx-assistant-be/pkg/store"
)

// genericErrorText is the user-facing message for any run the pipeline
// could not complete in a structured way.
const genericErrorText = "I could not process that command. Please try rephrasing it."

// historyWindow is how many past entries the suggestion stage sees.
const historyWindow = 5

// defaultSearchLimit bounds semantic retrieval per run.
const defaultSearchLimit = 10

// Deps are the stage collaborators of one Orchestrator. All fields are
// required except Logger.
type Deps struct {
	Supervisor  *supervisor.Supervisor
	Classifier  *intent.Classifier
	Permissions *permission.Evaluator
	Actors      permission.ActorResolver
	Collector   *contextinfo.Collector
	Planner     *planner.Planner
	Queries     *action.QueryExecutor
	Search      *search.Engine
	Dispatcher  *action.Dispatcher
	Viz         *visualization.Builder
	Composer    *response.Composer
	Suggestions *suggestion.Generator
	Memory      *memory.Store
	Logger      *log.Logger
}

// Orchestrator sequences one pipeline run per incoming command:
// validation, classification, permission, context, retrieval or
// dispatch, visualization, composition, final quality check,
// suggestions, memory append. Every stage outcome passes through the
// supervisor before the run proceeds.
type Orchestrator struct {
	deps Deps
}

func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{deps: deps}
}

// Run executes the full pipeline for one command. It never panics:
// anything thrown by a collaborator outside a guarded call site is
// converted into a generic failure result.
func (o *Orchestrator) Run(ctx context.Context, cmd store.Command, uiContext store.UIContext) (result *store.CommandResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logf("[PIPELINE] run panicked: %v", r)
			result = &store.CommandResult{Success: false, Error: genericErrorText}
		}
	}()

	var warnings []string

	// 1. Raw text gate. Nothing downstream runs for a rejected command.
	if verdict := o.deps.Supervisor.ValidateInitial(cmd.Text); !verdict.Approved {
		return rejection(verdict)
	}

	// 2. Intent classification.
	cmdIntent := o.deps.Classifier.Classify(ctx, cmd.Text, cmd.UserID)
	if verdict := o.deps.Supervisor.ValidateIntent(cmdIntent); !verdict.Approved {
		return rejection(verdict)
	}

	// 3. Permission. The verdict never disapproves; a denied decision
	// aborts on its own.
	decision := o.deps.Permissions.Check(ctx, cmdIntent.Name, cmd.UserID, cmdIntent.Params)
	permVerdict := o.deps.Supervisor.ValidatePermission(decision)
	if decision == nil || !decision.Allowed {
		return rejection(&store.QualityVerdict{
			QualityScore: permVerdict.QualityScore,
			Reason:       deniedReason(decision),
		})
	}

	// 4. Context, soft gate.
	snapshot := o.deps.Collector.Collect(ctx, cmd.UserID, uiContext)
	if verdict := o.deps.Supervisor.ValidateContext(snapshot); !verdict.Approved {
		warnings = append(warnings, verdict.Reason)
	}

	// 5. Pre-run memory compaction.
	o.deps.Memory.CompactBefore()

	// 6. Retrieval or domain action.
	var actionResult *store.ActionResult
	if intent.IsRetrieval(cmdIntent.Name) {
		var plan *store.QueryPlan
		if cmdIntent.Name == intent.GetAllData {
			// Fixed plan: how many vectorized records exist per entity.
			plan = &store.QueryPlan{
				Strategy:    store.StrategyStructured,
				QueryType:   store.QueryGroupBy,
				Entities:    []string{"data_embeddings"},
				GroupBy:     "entity_type",
				Description: "vectorized records per entity type",
				Confidence:  0.9,
			}
		} else {
			plan = o.deps.Planner.Plan(ctx, cmd.Text, cmdIntent)
		}
		actionResult = o.retrieve(ctx, cmd.Text, plan)
		if verdict := o.deps.Supervisor.ValidateRetrievalResult(actionResult); !verdict.Approved {
			return rejection(verdict)
		}
	} else {
		actor, err := o.deps.Actors.Resolve(ctx, cmd.UserID)
		if err != nil {
			o.logf("[PIPELINE] actor lookup before dispatch failed: %v", err)
		}
		req := action.Request{Params: cmdIntent.Params, Actor: actor}
		if snapshot != nil {
			req.Page = snapshot.PageContext
		}
		actionResult = o.deps.Dispatcher.Dispatch(ctx, cmdIntent.Name, req)

		verdict := o.deps.Supervisor.ValidateActionResult(actionResult)
		if actionResult == nil || actionResult.Error != "" {
			return rejection(verdict)
		}
		if !verdict.Approved {
			warnings = append(warnings, verdict.Reason)
		}
	}

	// 7. Visualizations, soft gate.
	vizs := o.deps.Viz.Build(actionResult, cmdIntent, cmd.Text)
	if verdict := o.deps.Supervisor.ValidateVisualizations(vizs); !verdict.Approved {
		warnings = append(warnings, verdict.Reason)
	}

	// 8. Response text.
	reply := o.deps.Composer.Compose(cmd.Text, actionResult, vizs, cmdIntent)

	// 9. Post-run memory compaction.
	o.deps.Memory.CompactAfter()

	// 10. Final holistic check, with one bounded correction attempt.
	replyText, final := o.finalize(ctx, cmd.Text, reply.Text, actionResult, vizs, cmdIntent)
	if !final.Approved {
		o.logf("[PIPELINE] final check rejected after correction, score=%d", final.QualityScore)
		return &store.CommandResult{
			Success:      false,
			Error:        genericErrorText,
			Intent:       cmdIntent.Name,
			QualityScore: final.QualityScore,
		}
	}
	reply.Text = replyText

	// 11. Suggestions.
	suggestions := o.deps.Suggestions.Suggest(cmd.Text, cmdIntent, actionResult, o.deps.Memory.Recent(historyWindow))

	// 12. Remember the exchange.
	o.deps.Memory.Append(store.ConversationEntry{
		Command:   cmd.Text,
		Intent:    cmdIntent.Name,
		Response:  reply.Text,
		Success:   true,
		Timestamp: time.Now(),
	})

	return &store.CommandResult{
		Success:        true,
		Response:       reply.Text,
		VoiceConfig:    reply.Voice,
		Visualizations: vizs,
		Suggestions:    suggestions,
		Intent:         cmdIntent.Name,
		QualityScore:   final.QualityScore,
		Warnings:       warnings,
	}
}

// finalize runs the holistic quality check and, when it fails, asks the
// supervisor for one rewrite. The rewrite replaces the reply only after
// passing the same check; otherwise the original rejection stands.
func (o *Orchestrator) finalize(ctx context.Context, cmdText, replyText string, actionResult *store.ActionResult, vizs []store.Visualization, cmdIntent *store.Intent) (string, *store.QualityVerdict) {
	final := o.deps.Supervisor.ValidateFinal(cmdText, replyText, actionResult, vizs, cmdIntent)
	if final.Approved {
		return replyText, final
	}

	rewritten, err := o.deps.Supervisor.AttemptCorrection(ctx, cmdText, replyText, final)
	if err != nil || rewritten == "" {
		return replyText, final
	}

	redo := o.deps.Supervisor.ValidateFinal(cmdText, rewritten, actionResult, vizs, cmdIntent)
	if redo.Approved {
		return rewritten, redo
	}
	return replyText, final
}

// retrieve executes a query plan. Structured plans go to the query
// executor, semantic plans to the search engine; hybrid plans try
// structured first and fall through to semantic when it yields nothing.
func (o *Orchestrator) retrieve(ctx context.Context, text string, plan *store.QueryPlan) *store.ActionResult {
	switch plan.Strategy {
	case store.StrategyStructured:
		return o.deps.Queries.Execute(ctx, plan)
	case store.StrategySemantic:
		return o.semantic(ctx, text, plan)
	case store.StrategyHybrid:
		structured := o.deps.Queries.Execute(ctx, plan)
		if usable(structured) {
			return structured
		}
		return o.semantic(ctx, text, plan)
	default:
		return o.semantic(ctx, text, plan)
	}
}

func (o *Orchestrator) semantic(ctx context.Context, text string, plan *store.QueryPlan) *store.ActionResult {
	entityType := ""
	if len(plan.Entities) > 0 {
		entityType = plan.Entities[0]
	}

	found, err := o.deps.Search.Search(ctx, text, entityType, defaultSearchLimit)
	if err != nil {
		return &store.ActionResult{Success: false, Error: err.Error()}
	}

	result := &store.ActionResult{
		Success: true,
		Summary: found.Summary,
	}
	if len(found.Results) > 0 {
		result.Data = found.Results
	} else if len(found.Unranked) > 0 {
		result.Data = found.Unranked
	}
	return result
}

func usable(result *store.ActionResult) bool {
	if result == nil || result.Error != "" || !result.Success {
		return false
	}
	if result.IsCount || result.IsAggregate {
		return true
	}
	switch v := result.Data.(type) {
	case []map[string]interface{}:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	case nil:
		return result.Summary != ""
	default:
		return true
	}
}

func rejection(verdict *store.QualityVerdict) *store.CommandResult {
	reason := verdict.Reason
	if reason == "" {
		reason = genericErrorText
	}
	return &store.CommandResult{
		Success:      false,
		Error:        reason,
		QualityScore: verdict.QualityScore,
	}
}

func deniedReason(decision *store.PermissionDecision) string {
	if decision == nil || decision.Reason == "" {
		return "you do not have permission to run this command"
	}
	return decision.Reason
}

func (o *Orchestrator) logf(format string, args ...interface{}) {
	if o.deps.Logger != nil {
		o.deps.Logger.Printf(format, args...)
	}
}

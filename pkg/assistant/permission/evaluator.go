package permission

import (
	"context"
	"log"

	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/store"
)

// ActorResolver turns a user identity into an actor record with role
// and company membership. Implemented over the client repository.
type ActorResolver interface {
	Resolve(ctx context.Context, userID string) (*store.Actor, error)
}

// Role names used by the requirement table.
const (
	RoleAdmin        = "admin"
	RoleCompanyAdmin = "company_admin"
	RoleUser         = "user"
)

// requirement is one row of the static intent -> access table.
type requirement struct {
	// adminOnly restricts the intent to tenant administrators.
	adminOnly bool
	// companyAdmin allows administrators of the referenced company too.
	companyAdmin bool
}

// requirements is the static permission table. Intents absent from the
// table default to allowed for any authenticated actor, so purely
// informational intents never need an entry.
var requirements = map[string]requirement{
	intent.CreateCompany: {adminOnly: true},
	intent.DeleteCompany: {adminOnly: true},
	intent.UpdateCompany: {companyAdmin: true},

	intent.CreateEmployee: {companyAdmin: true},
	intent.UpdateEmployee: {companyAdmin: true},
	intent.DeleteEmployee: {companyAdmin: true},
	intent.ListEmployees:  {companyAdmin: true},

	intent.CreateProspect: {companyAdmin: true},
	intent.CreateCampaign: {companyAdmin: true},
	intent.CreateBenefit:  {adminOnly: true},
	intent.CreateProduct:  {adminOnly: true},

	intent.SyncIntegration: {adminOnly: true},
	intent.TestConnection:  {companyAdmin: true},
}

// Evaluator maps (intent, actor, params) to an allow/deny decision.
// Decisions are deterministic: the same (intent, role) pair always
// yields the same outcome.
type Evaluator struct {
	resolver ActorResolver
	logger   *log.Logger
}

func NewEvaluator(resolver ActorResolver, logger *log.Logger) *Evaluator {
	return &Evaluator{
		resolver: resolver,
		logger:   logger,
	}
}

// Check resolves the actor and applies the requirement table.
func (e *Evaluator) Check(ctx context.Context, intentName string, userID string, params map[string]interface{}) *store.PermissionDecision {
	actor, err := e.resolver.Resolve(ctx, userID)
	if err != nil || actor == nil {
		if err != nil && e.logger != nil {
			e.logger.Printf("[PERMISSION] actor resolution failed for %s: %v", userID, err)
		}
		return &store.PermissionDecision{
			Allowed: false,
			Reason:  "actor not found",
		}
	}

	return e.decide(intentName, actor)
}

func (e *Evaluator) decide(intentName string, actor *store.Actor) *store.PermissionDecision {
	req, listed := requirements[intentName]
	if !listed {
		return &store.PermissionDecision{
			Allowed: true,
			Role:    actor.Role,
		}
	}

	if actor.Role == RoleAdmin {
		return &store.PermissionDecision{
			Allowed:   true,
			Role:      actor.Role,
			Qualifier: "tenant administrator",
		}
	}

	if req.companyAdmin && actor.IsCompanyAdmin {
		return &store.PermissionDecision{
			Allowed:   true,
			Role:      actor.Role,
			Qualifier: "administrator of the referenced company",
		}
	}

	return &store.PermissionDecision{
		Allowed: false,
		Role:    actor.Role,
		Reason:  "your role does not allow this operation",
	}
}

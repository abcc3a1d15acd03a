package permission

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/store"
)

type stubResolver struct {
	actor *store.Actor
	err   error
}

func (r *stubResolver) Resolve(ctx context.Context, userID string) (*store.Actor, error) {
	return r.actor, r.err
}

func actorWithRole(role string, companyAdmin bool) *store.Actor {
	return &store.Actor{
		ID:             "actor-1",
		UserID:         "user-1",
		Role:           role,
		IsCompanyAdmin: companyAdmin,
	}
}

func TestCheckDeniesMissingActor(t *testing.T) {
	e := NewEvaluator(&stubResolver{actor: nil}, nil)

	decision := e.Check(context.Background(), intent.CreateCompany, "ghost", nil)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "actor not found", decision.Reason)
}

func TestCheckDeniesOnResolverError(t *testing.T) {
	e := NewEvaluator(&stubResolver{err: fmt.Errorf("store down")}, nil)

	decision := e.Check(context.Background(), intent.ListCompanies, "user-1", nil)
	assert.False(t, decision.Allowed)
}

func TestRequirementTable(t *testing.T) {
	tests := []struct {
		name        string
		intentName  string
		role        string
		companyAdmin bool
		wantAllowed bool
	}{
		{"admin creates company", intent.CreateCompany, RoleAdmin, false, true},
		{"company admin cannot create company", intent.CreateCompany, RoleUser, true, false},
		{"plain user cannot delete company", intent.DeleteCompany, RoleUser, false, false},
		{"company admin manages employees", intent.CreateEmployee, RoleUser, true, true},
		{"plain user cannot manage employees", intent.CreateEmployee, RoleUser, false, false},
		{"admin manages employees", intent.DeleteEmployee, RoleAdmin, false, true},
		{"anyone lists companies", intent.ListCompanies, RoleUser, false, true},
		{"anyone runs retrieval", intent.QueryDatabase, RoleUser, false, true},
		{"unlisted intent defaults to allowed", "navigate_dashboard", RoleUser, false, true},
		{"integration sync is admin only", intent.SyncIntegration, RoleUser, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(&stubResolver{actor: actorWithRole(tt.role, tt.companyAdmin)}, nil)
			decision := e.Check(context.Background(), tt.intentName, "user-1", nil)
			assert.Equal(t, tt.wantAllowed, decision.Allowed)
		})
	}
}

func TestDecisionsAreStable(t *testing.T) {
	e := NewEvaluator(&stubResolver{actor: actorWithRole(RoleUser, false)}, nil)

	first := e.Check(context.Background(), intent.CreateCompany, "user-1", nil)
	for i := 0; i < 20; i++ {
		again := e.Check(context.Background(), intent.CreateCompany, "user-1", nil)
		assert.Equal(t, first.Allowed, again.Allowed)
		assert.Equal(t, first.Reason, again.Reason)
	}
}

package action

import (
	"context"
	"fmt"
	"testing"

	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

type scriptedCompanies struct {
	created *store.ActionResult
	err     error
	panics  bool
	calls   int
}

func (s *scriptedCompanies) Create(ctx context.Context, req Request) (*store.ActionResult, error) {
	s.calls++
	if s.panics {
		panic("collaborator blew up")
	}
	return s.created, s.err
}

func (s *scriptedCompanies) Update(ctx context.Context, req Request) (*store.ActionResult, error) {
	return &store.ActionResult{Success: true}, nil
}

func (s *scriptedCompanies) Delete(ctx context.Context, req Request) (*store.ActionResult, error) {
	return &store.ActionResult{Success: true}, nil
}

func (s *scriptedCompanies) Find(ctx context.Context, req Request) (*store.ActionResult, error) {
	return &store.ActionResult{Success: true}, nil
}

func (s *scriptedCompanies) List(ctx context.Context, req Request) (*store.ActionResult, error) {
	return &store.ActionResult{Success: true}, nil
}

func TestDispatchRoutesToRegisteredHandler(t *testing.T) {
	companies := &scriptedCompanies{
		created: &store.ActionResult{Success: true, Summary: "company Acme created"},
	}
	d := NewDispatcher(Collaborators{Companies: companies}, nil)

	res := d.Dispatch(context.Background(), intent.CreateCompany, Request{
		Params: map[string]interface{}{"name": "Acme"},
	})

	assert.True(t, res.Success)
	assert.Equal(t, "company Acme created", res.Summary)
	assert.Equal(t, 1, companies.calls)
}

func TestDispatchUnknownIntentFailsWithoutPanic(t *testing.T) {
	d := NewDispatcher(Collaborators{}, nil)

	res := d.Dispatch(context.Background(), "teleport_company", Request{})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "intent not recognized")
}

func TestDispatchWrapsCollaboratorError(t *testing.T) {
	companies := &scriptedCompanies{err: fmt.Errorf("company name is required")}
	d := NewDispatcher(Collaborators{Companies: companies}, nil)

	res := d.Dispatch(context.Background(), intent.CreateCompany, Request{})

	assert.False(t, res.Success)
	assert.Equal(t, "company name is required", res.Error)
}

func TestDispatchRecoversCollaboratorPanic(t *testing.T) {
	companies := &scriptedCompanies{panics: true}
	d := NewDispatcher(Collaborators{Companies: companies}, nil)

	res := d.Dispatch(context.Background(), intent.CreateCompany, Request{})

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestDispatchNilResultBecomesFailure(t *testing.T) {
	companies := &scriptedCompanies{created: nil}
	d := NewDispatcher(Collaborators{Companies: companies}, nil)

	res := d.Dispatch(context.Background(), intent.CreateCompany, Request{})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "no result")
}

func TestHandlesReflectsRegistration(t *testing.T) {
	d := NewDispatcher(Collaborators{Companies: &scriptedCompanies{}}, nil)

	assert.True(t, d.Handles(intent.ListCompanies))
	assert.False(t, d.Handles(intent.ListEmployees))
}

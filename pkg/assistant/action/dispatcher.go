package action

import (
	"context"
	"fmt"
	"log"

	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/store"
)

// Request carries everything a domain collaborator may need for one call.
type Request struct {
	Params map[string]interface{}
	Actor  *store.Actor
	Page   map[string]interface{}
}

// HandlerFunc is one entry of the dispatch table.
type HandlerFunc func(ctx context.Context, req Request) (*store.ActionResult, error)

// Domain collaborator contracts. Implementations live in the service
// layer; the dispatcher only routes.

type CompanyActions interface {
	Create(ctx context.Context, req Request) (*store.ActionResult, error)
	Update(ctx context.Context, req Request) (*store.ActionResult, error)
	Delete(ctx context.Context, req Request) (*store.ActionResult, error)
	Find(ctx context.Context, req Request) (*store.ActionResult, error)
	List(ctx context.Context, req Request) (*store.ActionResult, error)
}

type EmployeeActions interface {
	Create(ctx context.Context, req Request) (*store.ActionResult, error)
	Update(ctx context.Context, req Request) (*store.ActionResult, error)
	Delete(ctx context.Context, req Request) (*store.ActionResult, error)
	List(ctx context.Context, req Request) (*store.ActionResult, error)
}

type ProspectActions interface {
	Create(ctx context.Context, req Request) (*store.ActionResult, error)
	List(ctx context.Context, req Request) (*store.ActionResult, error)
}

type CampaignActions interface {
	Create(ctx context.Context, req Request) (*store.ActionResult, error)
	List(ctx context.Context, req Request) (*store.ActionResult, error)
}

type BenefitActions interface {
	Create(ctx context.Context, req Request) (*store.ActionResult, error)
	List(ctx context.Context, req Request) (*store.ActionResult, error)
}

type ProductActions interface {
	Create(ctx context.Context, req Request) (*store.ActionResult, error)
	List(ctx context.Context, req Request) (*store.ActionResult, error)
}

type IntegrationActions interface {
	Sync(ctx context.Context, req Request) (*store.ActionResult, error)
	TestConnection(ctx context.Context, req Request) (*store.ActionResult, error)
}

// Collaborators groups the domain services the dispatcher routes to.
// Nil members simply leave their intents unregistered.
type Collaborators struct {
	Companies    CompanyActions
	Employees    EmployeeActions
	Prospects    ProspectActions
	Campaigns    CampaignActions
	Benefits     BenefitActions
	Products     ProductActions
	Integrations IntegrationActions
}

// Dispatcher routes a non-retrieval intent to the matching collaborator
// method through a static table built at construction time.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   *log.Logger
}

func NewDispatcher(c Collaborators, logger *log.Logger) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}

	if c.Companies != nil {
		d.handlers[intent.CreateCompany] = c.Companies.Create
		d.handlers[intent.UpdateCompany] = c.Companies.Update
		d.handlers[intent.DeleteCompany] = c.Companies.Delete
		d.handlers[intent.FindCompany] = c.Companies.Find
		d.handlers[intent.ListCompanies] = c.Companies.List
	}
	if c.Employees != nil {
		d.handlers[intent.CreateEmployee] = c.Employees.Create
		d.handlers[intent.UpdateEmployee] = c.Employees.Update
		d.handlers[intent.DeleteEmployee] = c.Employees.Delete
		d.handlers[intent.ListEmployees] = c.Employees.List
	}
	if c.Prospects != nil {
		d.handlers[intent.CreateProspect] = c.Prospects.Create
		d.handlers[intent.ListProspects] = c.Prospects.List
	}
	if c.Campaigns != nil {
		d.handlers[intent.CreateCampaign] = c.Campaigns.Create
		d.handlers[intent.ListCampaigns] = c.Campaigns.List
	}
	if c.Benefits != nil {
		d.handlers[intent.CreateBenefit] = c.Benefits.Create
		d.handlers[intent.ListBenefits] = c.Benefits.List
	}
	if c.Products != nil {
		d.handlers[intent.CreateProduct] = c.Products.Create
		d.handlers[intent.ListProducts] = c.Products.List
	}
	if c.Integrations != nil {
		d.handlers[intent.SyncIntegration] = c.Integrations.Sync
		d.handlers[intent.TestConnection] = c.Integrations.TestConnection
	}

	return d
}

// Dispatch runs the handler for intentName. Collaborator errors and
// panics are contained here; the caller always gets an ActionResult.
func (d *Dispatcher) Dispatch(ctx context.Context, intentName string, req Request) (result *store.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			if d.logger != nil {
				d.logger.Printf("[DISPATCH] recovered panic in %s: %v", intentName, r)
			}
			result = &store.ActionResult{
				Success: false,
				Error:   "the requested operation failed unexpectedly",
			}
		}
	}()

	handler, ok := d.handlers[intentName]
	if !ok {
		return &store.ActionResult{
			Success: false,
			Error:   fmt.Sprintf("intent not recognized: %s", intentName),
		}
	}

	res, err := handler(ctx, req)
	if err != nil {
		if d.logger != nil {
			d.logger.Printf("[DISPATCH] %s failed: %v", intentName, err)
		}
		return &store.ActionResult{
			Success: false,
			Error:   err.Error(),
		}
	}
	if res == nil {
		return &store.ActionResult{
			Success: false,
			Error:   "collaborator returned no result",
		}
	}
	return res
}

// Handles reports whether a handler is registered for intentName.
func (d *Dispatcher) Handles(intentName string) bool {
	_, ok := d.handlers[intentName]
	return ok
}

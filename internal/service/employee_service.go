package service

import (
	"context"
	"fmt"
	"time"

	"opx-assistant-be/internal/dto"
	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/specification"
	"opx-assistant-be/internal/repository/unitofwork"
	"opx-assistant-be/pkg/assistant/action"
	"opx-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type IEmployeeService interface {
	action.EmployeeActions
}

type employeeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewEmployeeService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IEmployeeService {
	return &employeeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *employeeService) Create(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	name := stringParam(req.Params, "name")
	if name == "" {
		return nil, fmt.Errorf("employee name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	companyId, err := s.resolveCompany(ctx, uow, req)
	if err != nil {
		return nil, err
	}

	employee := entity.Employee{
		Id:        uuid.New(),
		Name:      name,
		Cpf:       stringParam(req.Params, "cpf"),
		Email:     stringParam(req.Params, "email"),
		Position:  stringParam(req.Params, "position"),
		Salary:    floatParam(req.Params, "salary"),
		CompanyId: companyId,
		CreatedAt: time.Now(),
	}
	if err := uow.EmployeeRepository().Create(ctx, &employee); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, s.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "employees",
		EntityId:   employee.Id,
		Document:   employeeDocument(&employee),
	})

	return &store.ActionResult{
		Success: true,
		Data:    employeeRow(&employee),
		Summary: fmt.Sprintf("employee %s created", employee.Name),
	}, nil
}

func (s *employeeService) Update(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := s.locate(ctx, uow, req.Params)
	if err != nil {
		return nil, err
	}

	if v := stringParam(req.Params, "position"); v != "" {
		employee.Position = v
	}
	if v := stringParam(req.Params, "email"); v != "" {
		employee.Email = v
	}
	if v := floatParam(req.Params, "salary"); v > 0 {
		employee.Salary = v
	}
	now := time.Now()
	employee.UpdatedAt = &now

	if err := uow.EmployeeRepository().Update(ctx, employee); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, s.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "employees",
		EntityId:   employee.Id,
		Document:   employeeDocument(employee),
	})

	return &store.ActionResult{
		Success: true,
		Data:    employeeRow(employee),
		Summary: fmt.Sprintf("employee %s updated", employee.Name),
	}, nil
}

func (s *employeeService) Delete(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := s.locate(ctx, uow, req.Params)
	if err != nil {
		return nil, err
	}

	if err := uow.EmployeeRepository().Delete(ctx, employee.Id); err != nil {
		return nil, err
	}

	publishEmbedRecord(ctx, s.publisherService, dto.PublishEmbedRecordMessage{
		EntityType: "employees",
		EntityId:   employee.Id,
		Deleted:    true,
	})

	return &store.ActionResult{
		Success: true,
		Summary: fmt.Sprintf("employee %s removed", employee.Name),
	}, nil
}

func (s *employeeService) List(ctx context.Context, req action.Request) (*store.ActionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	}
	if id, ok := uuidParam(req.Params, "company_id"); ok {
		specs = append(specs, specification.ByCompanyID{CompanyID: id})
	}

	employees, err := uow.EmployeeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, len(employees))
	for i, employee := range employees {
		rows[i] = employeeRow(employee)
	}

	return &store.ActionResult{
		Success: true,
		Data:    rows,
		Summary: fmt.Sprintf("%d employees", len(rows)),
	}, nil
}

// resolveCompany binds a new employee to a company: explicit company_id
// param first, then the actor's own company.
func (s *employeeService) resolveCompany(ctx context.Context, uow unitofwork.UnitOfWork, req action.Request) (uuid.UUID, error) {
	if id, ok := uuidParam(req.Params, "company_id"); ok {
		return id, nil
	}
	if name := stringParam(req.Params, "company"); name != "" {
		company, err := uow.CompanyRepository().FindOne(ctx, specification.ByNameLike{Name: name})
		if err != nil {
			return uuid.Nil, err
		}
		if company != nil {
			return company.Id, nil
		}
	}
	if req.Actor != nil && req.Actor.CompanyID != "" {
		if id, err := uuid.Parse(req.Actor.CompanyID); err == nil {
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("no company to attach the employee to")
}

func (s *employeeService) locate(ctx context.Context, uow unitofwork.UnitOfWork, params map[string]interface{}) (*entity.Employee, error) {
	if id, ok := uuidParam(params, "id"); ok {
		employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, err
		}
		if employee != nil {
			return employee, nil
		}
	}
	if cpf := stringParam(params, "cpf"); cpf != "" {
		employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByCpf{Cpf: cpf})
		if err != nil {
			return nil, err
		}
		if employee != nil {
			return employee, nil
		}
	}
	if name := stringParam(params, "name"); name != "" {
		employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByNameLike{Name: name})
		if err != nil {
			return nil, err
		}
		if employee != nil {
			return employee, nil
		}
	}
	return nil, fmt.Errorf("employee not found")
}

func employeeRow(e *entity.Employee) map[string]interface{} {
	return map[string]interface{}{
		"id":         e.Id.String(),
		"name":       e.Name,
		"cpf":        e.Cpf,
		"email":      e.Email,
		"position":   e.Position,
		"salary":     e.Salary,
		"company_id": e.CompanyId.String(),
	}
}

func employeeDocument(e *entity.Employee) string {
	return fmt.Sprintf("Employee: %s. Position: %s. Email: %s.",
		e.Name, e.Position, e.Email)
}

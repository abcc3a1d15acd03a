package unitofwork

import (
	"context"

	"opx-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ClientRepository() contract.ClientRepository
	CompanyRepository() contract.CompanyRepository
	EmployeeRepository() contract.EmployeeRepository
	ProspectRepository() contract.ProspectRepository
	CampaignRepository() contract.CampaignRepository
	BenefitRepository() contract.BenefitRepository
	ProductRepository() contract.ProductRepository
	DataEmbeddingRepository() contract.DataEmbeddingRepository
	DatasetRepository() contract.DatasetRepository
}

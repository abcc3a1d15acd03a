package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByCompanyID struct {
	CompanyID uuid.UUID
}

func (s ByCompanyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("company_id = ?", s.CompanyID)
}

type ByCnpj struct {
	Cnpj string
}

func (s ByCnpj) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cnpj = ?", s.Cnpj)
}

type ByCpf struct {
	Cpf string
}

func (s ByCpf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cpf = ?", s.Cpf)
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// ByNameLike matches names case-insensitively on a partial value.
type ByNameLike struct {
	Name string
}

func (s ByNameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Name+"%")
}

type BySector struct {
	Sector string
}

func (s BySector) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sector = ?", s.Sector)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByEntityType struct {
	EntityType string
}

func (s ByEntityType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entity_type = ?", s.EntityType)
}

type ByEntityID struct {
	EntityID uuid.UUID
}

func (s ByEntityID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entity_id = ?", s.EntityID)
}

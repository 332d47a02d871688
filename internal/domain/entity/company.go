package entity

import "time"

// Company contribuyente/tenant del sistema (multi-tenant, régimen guatemalteco).
type Company struct {
	ID        string
	Name      string
	NIT       string // NIT (con dígito verificador, sin guion)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de la empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// CanOperate informa si la empresa puede usar sus módulos. Un estado vacío cuenta como activo.
func (c *Company) CanOperate() bool {
	return c.Status == "" || c.Status == CompanyStatusActive
}

// Módulos SaaS disponibles (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleFiscal  = "fiscal"
	ModuleISR     = "isr"
	ModuleExports = "exports"
)

// CompanyModule representa la activación de un módulo SaaS en una empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string // ver constantes Module*
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

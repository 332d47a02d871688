// Package usecase servicios de aplicación transversales a la liquidación.
package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/repository"
)

// ModuleService verifica qué módulos SaaS tiene activos una empresa.
// Una empresa suspendida o inactiva no tiene ningún módulo disponible.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule informa si la empresa puede usar el módulo.
// Devuelve false (sin error) si la empresa no existe, no opera o no lo tiene contratado.
// Devuelve error solo ante fallos de infraestructura o argumentos vacíos.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("%w: companyID y moduleName son obligatorios", domain.ErrInvalidInput)
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("module: consultar empresa %s: %w", companyID, err)
	}
	if company == nil || !company.CanOperate() {
		return false, nil
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}

package repository

import (
	"context"

	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
)

// PeriodSettlementRepository persistencia de liquidaciones, una por empresa y mes.
type PeriodSettlementRepository interface {
	// GetByPeriod devuelve (nil, nil) si el período no se ha liquidado.
	GetByPeriod(ctx context.Context, companyID string, period entity.Period) (*entity.PeriodSettlement, error)
	// Upsert sobrescribe la liquidación existente (última escritura gana).
	Upsert(ctx context.Context, s *entity.PeriodSettlement) error
}

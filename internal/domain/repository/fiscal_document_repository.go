package repository

import (
	"context"

	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
)

// FiscalDocumentRepository fuente de documentos ya validados y persistidos del mes.
type FiscalDocumentRepository interface {
	// ListByPeriod devuelve todos los documentos de la dirección emitidos dentro del
	// período, incluidos los anulados (el motor los descarta).
	ListByPeriod(ctx context.Context, companyID string, period entity.Period, direction entity.Direction) ([]entity.FiscalDocument, error)
}

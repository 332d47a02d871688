package repository

import (
	"context"

	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
)

// RetentionCertificateRepository constancias de retención del período, en cualquier estado.
type RetentionCertificateRepository interface {
	ListByPeriod(ctx context.Context, companyID string, period entity.Period, kind entity.RetentionKind) ([]entity.RetentionCertificate, error)
}

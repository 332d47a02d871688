package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/repository"
)

var _ repository.RetentionCertificateRepository = (*RetentionCertificateRepo)(nil)

// RetentionCertificateRepo lectura de constancias de retención sobre PostgreSQL.
type RetentionCertificateRepo struct {
	q Querier
}

// NewRetentionCertificateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRetentionCertificateRepository(q Querier) *RetentionCertificateRepo {
	return &RetentionCertificateRepo{q: q}
}

// ListByPeriod constancias del tipo emitidas en el mes, en cualquier estado.
func (r *RetentionCertificateRepo) ListByPeriod(ctx context.Context, companyID string, period entity.Period, kind entity.RetentionKind) ([]entity.RetentionCertificate, error) {
	query := `
		SELECT id, company_id, kind, number, agent_nit, agent_name, issue_date, status, withheld_amount, created_at
		FROM retention_certificates
		WHERE company_id = $1 AND kind = $2 AND issue_date >= $3 AND issue_date < $4
		ORDER BY issue_date, number`
	rows, err := r.q.Query(ctx, query, companyID, string(kind), period.Start(), period.End())
	if err != nil {
		return nil, fmt.Errorf("list retention certificates: %w", err)
	}
	defer rows.Close()

	list := make([]entity.RetentionCertificate, 0)
	for rows.Next() {
		var (
			c      entity.RetentionCertificate
			k      string
			status string
		)
		if err := rows.Scan(&c.ID, &c.CompanyID, &k, &c.Number, &c.AgentNIT, &c.AgentName,
			&c.IssueDate, &status, &c.WithheldAmount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan retention certificate: %w", err)
		}
		c.Kind = entity.RetentionKind(k)
		c.Status = entity.CertificateStatus(status)
		list = append(list, c)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/repository"
)

var _ repository.PeriodSettlementRepository = (*PeriodSettlementRepo)(nil)

// PeriodSettlementRepo liquidaciones mensuales sobre PostgreSQL.
// La llave natural es (company_id, year, month).
type PeriodSettlementRepo struct {
	q Querier
}

// NewPeriodSettlementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPeriodSettlementRepository(q Querier) *PeriodSettlementRepo {
	return &PeriodSettlementRepo{q: q}
}

// GetByPeriod devuelve (nil, nil) si el período no se ha liquidado.
func (r *PeriodSettlementRepo) GetByPeriod(ctx context.Context, companyID string, period entity.Period) (*entity.PeriodSettlement, error) {
	query := `
		SELECT id, company_id, year, month,
		       total_output_tax, total_input_tax, credit_carry_forward, retention_carry_forward,
		       retentions_declared, retention_balance_forward, tax_payable,
		       created_at, updated_at
		FROM period_settlements
		WHERE company_id = $1 AND year = $2 AND month = $3`
	var (
		s     entity.PeriodSettlement
		month int
	)
	err := r.q.QueryRow(ctx, query, companyID, period.Year, int(period.Month)).Scan(
		&s.ID, &s.CompanyID, &s.Period.Year, &month,
		&s.TotalOutputTax, &s.TotalInputTax, &s.CreditCarryForward, &s.RetentionCarryForward,
		&s.RetentionsDeclaredThisPeriod, &s.RetentionBalanceForward, &s.TaxPayable,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get period settlement: %w", err)
	}
	s.Period.Month = time.Month(month)
	return &s, nil
}

// Upsert inserta o sobrescribe la liquidación del período (última escritura gana).
// id y created_at de la fila existente se conservan.
func (r *PeriodSettlementRepo) Upsert(ctx context.Context, s *entity.PeriodSettlement) error {
	query := `
		INSERT INTO period_settlements (
			id, company_id, year, month,
			total_output_tax, total_input_tax, credit_carry_forward, retention_carry_forward,
			retentions_declared, retention_balance_forward, tax_payable,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id, year, month) DO UPDATE SET
			total_output_tax          = EXCLUDED.total_output_tax,
			total_input_tax           = EXCLUDED.total_input_tax,
			credit_carry_forward      = EXCLUDED.credit_carry_forward,
			retention_carry_forward   = EXCLUDED.retention_carry_forward,
			retentions_declared       = EXCLUDED.retentions_declared,
			retention_balance_forward = EXCLUDED.retention_balance_forward,
			tax_payable               = EXCLUDED.tax_payable,
			updated_at                = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Period.Year, int(s.Period.Month),
		s.TotalOutputTax, s.TotalInputTax, s.CreditCarryForward, s.RetentionCarryForward,
		s.RetentionsDeclaredThisPeriod, s.RetentionBalanceForward, s.TaxPayable,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert period settlement: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("upsert period settlement: %w", err)
	}
	return nil
}

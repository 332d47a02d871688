package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/repository"
)

var _ repository.FiscalDocumentRepository = (*FiscalDocumentRepo)(nil)

// FiscalDocumentRepo lectura de documentos fiscales sobre PostgreSQL (pool o tx).
type FiscalDocumentRepo struct {
	q Querier
}

// NewFiscalDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFiscalDocumentRepository(q Querier) *FiscalDocumentRepo {
	return &FiscalDocumentRepo{q: q}
}

const fiscalDocumentColumns = `
	id, company_id, direction, document_type, transaction_category, series, number,
	issue_date, counterparty_nit, counterparty_name,
	goods_base, services_base, tax_amount,
	levy_fuel, levy_tourism_lodging, levy_tourism_fare, levy_press_stamp, levy_firefighters,
	levy_municipal_rate, levy_alcoholic_drinks, levy_non_alcoholic_drinks, levy_tobacco,
	levy_cement, levy_port_tariff,
	total_amount, voided_at, created_at, updated_at`

// ListByPeriod documentos de la dirección con issue_date en [inicio, fin) del mes.
// Incluye anulados; el motor los descarta.
func (r *FiscalDocumentRepo) ListByPeriod(ctx context.Context, companyID string, period entity.Period, direction entity.Direction) ([]entity.FiscalDocument, error) {
	query := `SELECT` + fiscalDocumentColumns + `
		FROM fiscal_documents
		WHERE company_id = $1 AND direction = $2 AND issue_date >= $3 AND issue_date < $4
		ORDER BY issue_date, series, number`
	rows, err := r.q.Query(ctx, query, companyID, string(direction), period.Start(), period.End())
	if err != nil {
		return nil, fmt.Errorf("list fiscal documents: %w", err)
	}
	defer rows.Close()

	list := make([]entity.FiscalDocument, 0)
	for rows.Next() {
		var (
			d                   entity.FiscalDocument
			dir, docType, txCat string
		)
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &dir, &docType, &txCat, &d.Series, &d.Number,
			&d.IssueDate, &d.CounterpartyNIT, &d.CounterpartyName,
			&d.GoodsBase, &d.ServicesBase, &d.TaxAmount,
			&d.Levies.Fuel, &d.Levies.TourismLodging, &d.Levies.TourismFare, &d.Levies.PressStamp, &d.Levies.Firefighters,
			&d.Levies.MunicipalRate, &d.Levies.AlcoholicDrinks, &d.Levies.NonAlcoholicDrinks, &d.Levies.Tobacco,
			&d.Levies.Cement, &d.Levies.PortTariff,
			&d.TotalAmount, &d.VoidedAt, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fiscal document: %w", err)
		}
		d.Direction = entity.Direction(dir)
		d.DocumentType = entity.DocumentType(docType)
		d.TransactionCategory = entity.TransactionCategory(txCat)
		list = append(list, d)
	}
	return list, rows.Err()
}

package settlement

import (
	"github.com/jhoicas/cierre-fiscal/internal/application/dto"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
)

// Origen de los saldos iniciales.
const (
	OpeningFromOverride = "override"
	OpeningFromPrior    = "prior"
	OpeningFromZero     = "zero"
)

// Report resultado completo de una corrida, con los datos de la empresa.
// Es lo que reciben los adaptadores de exportación.
type Report struct {
	Company       *entity.Company
	Period        entity.Period
	Result        fiscal.SettlementResult
	Settlement    *entity.PeriodSettlement
	Opening       fiscal.OpeningBalances
	OpeningSource string
	Committed     bool
}

// ToResponse convierte el reporte a DTO.
func (r *Report) ToResponse() *dto.SettlementReportResponse {
	return &dto.SettlementReportResponse{
		CompanyID:       r.Company.ID,
		CompanyName:     r.Company.Name,
		CompanyNIT:      r.Company.NIT,
		Period:          r.Period.String(),
		Committed:       r.Committed,
		OpeningSource:   r.OpeningSource,
		Settlement:      *SettlementToResponse(r.Settlement),
		VAT:             vatToResponse(r.Result.VAT),
		Sales:           bucketsToResponse(r.Result.SalesBuckets),
		Purchases:       bucketsToResponse(r.Result.PurchaseBuckets),
		SalesSummary:    summaryToResponse(r.Result.SalesSummary),
		PurchaseSummary: summaryToResponse(r.Result.PurchaseSummary),
	}
}

// SettlementToResponse convierte la entidad persistida a DTO.
func SettlementToResponse(s *entity.PeriodSettlement) *dto.PeriodSettlementResponse {
	if s == nil {
		return nil
	}
	out := &dto.PeriodSettlementResponse{
		ID:                           s.ID,
		CompanyID:                    s.CompanyID,
		Period:                       s.Period.String(),
		TotalOutputTax:               s.TotalOutputTax,
		TotalInputTax:                s.TotalInputTax,
		CreditCarryForward:           s.CreditCarryForward,
		RetentionCarryForward:        s.RetentionCarryForward,
		RetentionsDeclaredThisPeriod: s.RetentionsDeclaredThisPeriod,
		RetentionBalanceForward:      s.RetentionBalanceForward,
		TaxPayable:                   s.TaxPayable,
	}
	if !s.CreatedAt.IsZero() {
		created, updated := s.CreatedAt, s.UpdatedAt
		out.CreatedAt = &created
		out.UpdatedAt = &updated
	}
	return out
}

func bucketsToResponse(t fiscal.BucketTable) []dto.BucketRowResponse {
	rows := make([]dto.BucketRowResponse, 0, len(t.Rows))
	for _, b := range t.Rows {
		rows = append(rows, dto.BucketRowResponse{
			Category:  string(b.Category),
			Label:     b.Label,
			Base:      b.Base,
			Tax:       b.Tax,
			Documents: b.Documents,
			IsTotal:   b.Synthetic,
		})
	}
	return rows
}

func summaryToResponse(s fiscal.DocumentSummary) dto.DocumentSummaryResponse {
	return dto.DocumentSummaryResponse{
		Direction:        string(s.Direction),
		Documents:        s.Documents,
		DocumentsTotal:   s.DocumentsTotal,
		CreditNotes:      s.CreditNotes,
		CreditNotesTotal: s.CreditNotesTotal,
		Voided:           s.Voided,
		OtherLevies:      s.OtherLevies,
	}
}

func vatToResponse(v fiscal.VATResult) dto.VATSummaryResponse {
	return dto.VATSummaryResponse{
		TotalOutputTax:             v.TotalOutputTax,
		PurchaseInputTax:           v.PurchaseInputTax,
		PriorCredit:                v.PriorCredit,
		ExemptionCertificateCredit: v.ExemptionCertificateCredit,
		TotalInputTax:              v.TotalInputTax,
		CreditsExceedDebits:        v.CreditsExceedDebits,
		DebitsExceedCredits:        v.DebitsExceedCredits,
		CertifiedRetentions:        v.CertifiedRetentions,
		DeclaredRetentions:         v.DeclaredRetentions,
		PriorRetention:             v.PriorRetention,
		RetentionBalanceForward:    v.RetentionBalanceForward,
		CreditCarryForward:         v.CreditCarryForward,
		TaxPayable:                 v.TaxPayable,
	}
}

func overridesFromDTO(o dto.SettlementOverrides) fiscal.ManualOverrides {
	return fiscal.ManualOverrides{
		CreditCarryForward:         o.CreditCarryForward,
		RetentionCarryForward:      o.RetentionCarryForward,
		ExemptionCertificateCredit: o.ExemptionCertificateCredit,
		DeclaredRetentions:         o.DeclaredRetentions,
	}
}

func openingSource(prior *entity.PeriodSettlement, ov fiscal.ManualOverrides) string {
	switch {
	case ov.CreditCarryForward != nil || ov.RetentionCarryForward != nil:
		return OpeningFromOverride
	case prior != nil:
		return OpeningFromPrior
	default:
		return OpeningFromZero
	}
}

package fiscal

import (
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ManualOverrides valores que el usuario captura para el período actual; nil
// significa "usar el valor por defecto". Nunca modifican la liquidación anterior.
type ManualOverrides struct {
	CreditCarryForward         *decimal.Decimal
	RetentionCarryForward      *decimal.Decimal
	ExemptionCertificateCredit *decimal.Decimal
	DeclaredRetentions         *decimal.Decimal
}

// OpeningBalances saldos iniciales del período.
type OpeningBalances struct {
	Credit    decimal.Decimal
	Retention decimal.Decimal
}

// ResolveOpening override > liquidación previa > cero.
func ResolveOpening(prior *entity.PeriodSettlement, ov ManualOverrides) OpeningBalances {
	ob := OpeningBalances{Credit: decimal.Zero, Retention: decimal.Zero}
	if prior != nil {
		ob.Credit = prior.CreditCarryForward
		ob.Retention = prior.RetentionBalanceForward
	}
	if ov.CreditCarryForward != nil {
		ob.Credit = *ov.CreditCarryForward
	}
	if ov.RetentionCarryForward != nil {
		ob.Retention = *ov.RetentionCarryForward
	}
	return ob
}

// SettlementInput todo lo que necesita una corrida completa del período.
type SettlementInput struct {
	Sales                      []entity.FiscalDocument
	Purchases                  []entity.FiscalDocument
	Certificates               []entity.RetentionCertificate
	Opening                    OpeningBalances
	ExemptionCertificateCredit *decimal.Decimal
	DeclaredRetentions         *decimal.Decimal
}

// SettlementResult salida completa: tablas por renglón, resúmenes y cifras de IVA.
type SettlementResult struct {
	SalesBuckets    BucketTable
	PurchaseBuckets BucketTable
	SalesSummary    DocumentSummary
	PurchaseSummary DocumentSummary
	VAT             VATResult
}

// Settle ejecuta la liquidación completa sin estado oculto. Cada cambio de un
// override debe volver a llamar Settle; no hay actualización parcial.
func Settle(in SettlementInput) (SettlementResult, error) {
	sales, err := Aggregate(in.Sales, entity.DirectionSale)
	if err != nil {
		return SettlementResult{}, err
	}
	purchases, err := Aggregate(in.Purchases, entity.DirectionPurchase)
	if err != nil {
		return SettlementResult{}, err
	}
	exemption := decimal.Zero
	if in.ExemptionCertificateCredit != nil {
		exemption = *in.ExemptionCertificateCredit
	}
	vat, err := SettleVAT(VATInput{
		Sales:                      sales,
		Purchases:                  purchases,
		Certificates:               in.Certificates,
		PriorCredit:                in.Opening.Credit,
		PriorRetention:             in.Opening.Retention,
		ExemptionCertificateCredit: exemption,
		DeclaredRetentions:         in.DeclaredRetentions,
	})
	if err != nil {
		return SettlementResult{}, err
	}
	return SettlementResult{
		SalesBuckets:    sales,
		PurchaseBuckets: purchases,
		SalesSummary:    Summarize(in.Sales, entity.DirectionSale),
		PurchaseSummary: Summarize(in.Purchases, entity.DirectionPurchase),
		VAT:             vat,
	}, nil
}

// NewPeriodSettlement arma el registro a persistir a partir del resultado.
func NewPeriodSettlement(companyID string, period entity.Period, r SettlementResult) *entity.PeriodSettlement {
	return &entity.PeriodSettlement{
		CompanyID:                    companyID,
		Period:                       period,
		TotalOutputTax:               r.VAT.TotalOutputTax,
		TotalInputTax:                r.VAT.TotalInputTax,
		CreditCarryForward:           r.VAT.CreditCarryForward,
		RetentionCarryForward:        r.VAT.PriorRetention,
		RetentionsDeclaredThisPeriod: r.VAT.DeclaredRetentions,
		RetentionBalanceForward:      r.VAT.RetentionBalanceForward,
		TaxPayable:                   r.VAT.TaxPayable,
	}
}

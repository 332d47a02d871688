package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementOverrides valores capturados a mano para el período actual.
// Un campo ausente usa el valor por defecto (liquidación anterior o constancias).
type SettlementOverrides struct {
	CreditCarryForward         *decimal.Decimal `json:"credit_carry_forward,omitempty"`
	RetentionCarryForward      *decimal.Decimal `json:"retention_carry_forward,omitempty"`
	ExemptionCertificateCredit *decimal.Decimal `json:"exemption_certificate_credit,omitempty"`
	DeclaredRetentions         *decimal.Decimal `json:"declared_retentions,omitempty"`
}

// SettlementRequest solicitud de liquidación: período "YYYY-MM" + overrides.
// En HTTP el período llega por la ruta y los overrides en el body.
type SettlementRequest struct {
	Period    string              `json:"period"`
	Overrides SettlementOverrides `json:"overrides"`
}

// BucketRowResponse renglón de la declaración.
type BucketRowResponse struct {
	Category  string          `json:"category"`
	Label     string          `json:"label"`
	Base      decimal.Decimal `json:"base"`
	Tax       decimal.Decimal `json:"tax"`
	Documents int             `json:"documents"`
	IsTotal   bool            `json:"is_total,omitempty"`
}

// DocumentSummaryResponse conteos informativos por dirección.
type DocumentSummaryResponse struct {
	Direction        string          `json:"direction"`
	Documents        int             `json:"documents"`
	DocumentsTotal   decimal.Decimal `json:"documents_total"`
	CreditNotes      int             `json:"credit_notes"`
	CreditNotesTotal decimal.Decimal `json:"credit_notes_total"`
	Voided           int             `json:"voided"`
	OtherLevies      decimal.Decimal `json:"other_levies"`
}

// VATSummaryResponse cifras de la compensación de IVA.
type VATSummaryResponse struct {
	TotalOutputTax             decimal.Decimal `json:"total_output_tax"`
	PurchaseInputTax           decimal.Decimal `json:"purchase_input_tax"`
	PriorCredit                decimal.Decimal `json:"prior_credit"`
	ExemptionCertificateCredit decimal.Decimal `json:"exemption_certificate_credit"`
	TotalInputTax              decimal.Decimal `json:"total_input_tax"`
	CreditsExceedDebits        decimal.Decimal `json:"credits_exceed_debits"`
	DebitsExceedCredits        decimal.Decimal `json:"debits_exceed_credits"`
	CertifiedRetentions        decimal.Decimal `json:"certified_retentions"`
	DeclaredRetentions         decimal.Decimal `json:"declared_retentions"`
	PriorRetention             decimal.Decimal `json:"prior_retention"`
	RetentionBalanceForward    decimal.Decimal `json:"retention_balance_forward"`
	CreditCarryForward         decimal.Decimal `json:"credit_carry_forward"`
	TaxPayable                 decimal.Decimal `json:"tax_payable"`
}

// PeriodSettlementResponse liquidación persistida (o por persistir).
type PeriodSettlementResponse struct {
	ID                           string          `json:"id,omitempty"`
	CompanyID                    string          `json:"company_id"`
	Period                       string          `json:"period"`
	TotalOutputTax               decimal.Decimal `json:"total_output_tax"`
	TotalInputTax                decimal.Decimal `json:"total_input_tax"`
	CreditCarryForward           decimal.Decimal `json:"credit_carry_forward"`
	RetentionCarryForward        decimal.Decimal `json:"retention_carry_forward"`
	RetentionsDeclaredThisPeriod decimal.Decimal `json:"retentions_declared_this_period"`
	RetentionBalanceForward      decimal.Decimal `json:"retention_balance_forward"`
	TaxPayable                   decimal.Decimal `json:"tax_payable"`
	CreatedAt                    *time.Time      `json:"created_at,omitempty"`
	UpdatedAt                    *time.Time      `json:"updated_at,omitempty"`
}

// SettlementReportResponse respuesta completa de una corrida.
// OpeningSource indica de dónde salieron los saldos iniciales: override, prior o zero.
type SettlementReportResponse struct {
	CompanyID       string                   `json:"company_id"`
	CompanyName     string                   `json:"company_name"`
	CompanyNIT      string                   `json:"company_nit"`
	Period          string                   `json:"period"`
	Committed       bool                     `json:"committed"`
	OpeningSource   string                   `json:"opening_source"`
	Settlement      PeriodSettlementResponse `json:"settlement"`
	VAT             VATSummaryResponse       `json:"vat"`
	Sales           []BucketRowResponse      `json:"sales"`
	Purchases       []BucketRowResponse      `json:"purchases"`
	SalesSummary    DocumentSummaryResponse  `json:"sales_summary"`
	PurchaseSummary DocumentSummaryResponse  `json:"purchase_summary"`
}

// ISRResponse cálculo mensual del ISR (régimen opcional).
type ISRResponse struct {
	CompanyID string          `json:"company_id"`
	Period    string          `json:"period"`
	Base      decimal.Decimal `json:"base"`
	Tax       decimal.Decimal `json:"tax"`
	Withheld  decimal.Decimal `json:"withheld"`
	Payable   decimal.Decimal `json:"payable"`
	Documents int             `json:"documents"`
}

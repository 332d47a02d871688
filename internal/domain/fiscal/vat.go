package fiscal

import (
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// VATInput entradas de la liquidación de IVA. Los saldos iniciales ya vienen
// resueltos (override, registro previo o cero); DeclaredRetentions nil significa
// "derivar de las constancias".
type VATInput struct {
	Sales                      BucketTable
	Purchases                  BucketTable
	Certificates               []entity.RetentionCertificate
	PriorCredit                decimal.Decimal
	PriorRetention             decimal.Decimal
	ExemptionCertificateCredit decimal.Decimal
	DeclaredRetentions         *decimal.Decimal
}

// VATResult cifras de la liquidación de IVA del período.
type VATResult struct {
	TotalOutputTax             decimal.Decimal
	PurchaseInputTax           decimal.Decimal
	TotalInputTax              decimal.Decimal
	PriorCredit                decimal.Decimal
	ExemptionCertificateCredit decimal.Decimal
	CreditsExceedDebits        decimal.Decimal
	DebitsExceedCredits        decimal.Decimal
	CertifiedRetentions        decimal.Decimal
	DeclaredRetentions         decimal.Decimal
	PriorRetention             decimal.Decimal
	RetentionBalanceForward    decimal.Decimal
	TaxPayable                 decimal.Decimal
	CreditCarryForward         decimal.Decimal
}

// SettleVAT compensa débitos contra créditos, aplica retenciones y devuelve los
// saldos a trasladar. Misma entrada, misma salida.
func SettleVAT(in VATInput) (VATResult, error) {
	if err := nonNegative("remanente de crédito", in.PriorCredit); err != nil {
		return VATResult{}, err
	}
	if err := nonNegative("saldo de retenciones", in.PriorRetention); err != nil {
		return VATResult{}, err
	}
	if err := nonNegative("IVA por constancias de exención", in.ExemptionCertificateCredit); err != nil {
		return VATResult{}, err
	}
	if in.DeclaredRetentions != nil {
		if err := nonNegative("retenciones declaradas", *in.DeclaredRetentions); err != nil {
			return VATResult{}, err
		}
	}

	r := VATResult{
		PriorCredit:                round2(in.PriorCredit),
		ExemptionCertificateCredit: round2(in.ExemptionCertificateCredit),
		PriorRetention:             round2(in.PriorRetention),
	}
	r.TotalOutputTax = in.Sales.TaxTotal()
	r.PurchaseInputTax = in.Purchases.TaxTotal()
	r.TotalInputTax = round2(r.PurchaseInputTax.Add(r.PriorCredit).Add(r.ExemptionCertificateCredit))

	r.CreditsExceedDebits = round2(positivePart(r.TotalInputTax.Sub(r.TotalOutputTax)))
	r.DebitsExceedCredits = round2(positivePart(r.TotalOutputTax.Sub(r.TotalInputTax)))
	if r.CreditsExceedDebits.IsPositive() && r.DebitsExceedCredits.IsPositive() {
		return VATResult{}, &domain.ComputationInconsistencyError{
			Invariant: "débito y crédito excluyentes",
			Detail:    fmt.Sprintf("débito=%s crédito=%s", r.TotalOutputTax.StringFixed(2), r.TotalInputTax.StringFixed(2)),
		}
	}

	r.CertifiedRetentions = SumCertificates(in.Certificates, entity.RetentionVAT)
	r.DeclaredRetentions = r.CertifiedRetentions
	if in.DeclaredRetentions != nil {
		r.DeclaredRetentions = round2(*in.DeclaredRetentions)
	}

	off, err := OffsetRetentions(r.DebitsExceedCredits, r.CreditsExceedDebits, r.PriorRetention, r.DeclaredRetentions)
	if err != nil {
		return VATResult{}, err
	}
	r.TaxPayable = off.Payable
	r.RetentionBalanceForward = off.BalanceForward
	r.CreditCarryForward = r.CreditsExceedDebits
	return r, nil
}

func nonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s negativo (%s)", domain.ErrInvalidInput, name, v.StringFixed(2))
	}
	return nil
}

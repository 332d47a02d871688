package fiscal

import (
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Régimen opcional mensual del ISR.
var (
	ISRThreshold = decimal.NewFromInt(30000)
	ISRLowRate   = decimal.RequireFromString("0.05")
	ISRHighRate  = decimal.RequireFromString("0.07")
)

// ISRResult cálculo mensual del ISR sobre ventas.
type ISRResult struct {
	Base      decimal.Decimal
	Tax       decimal.Decimal
	Withheld  decimal.Decimal
	Payable   decimal.Decimal
	Documents int
}

// ComputeISR base = suma firmada de bienes + servicios de las ventas vigentes;
// impuesto progresivo en dos tramos; se restan las constancias ISR vigentes.
// Base <= 0 devuelve todo en cero.
func ComputeISR(sales []entity.FiscalDocument, certs []entity.RetentionCertificate) (ISRResult, error) {
	if err := ValidateDocuments(sales); err != nil {
		return ISRResult{}, err
	}
	zero := ISRResult{Base: decimal.Zero, Tax: decimal.Zero, Withheld: decimal.Zero, Payable: decimal.Zero}

	base := decimal.Zero
	count := 0
	for i := range sales {
		doc := &sales[i]
		if doc.Direction != entity.DirectionSale || doc.IsVoided() {
			continue
		}
		base = round2(base.Add(SignedBase(doc)))
		count++
	}
	if !base.IsPositive() {
		zero.Documents = count
		return zero, nil
	}

	r := ISRResult{Base: base, Documents: count}
	r.Tax = ISRTax(base)
	r.Withheld = SumCertificates(certs, entity.RetentionISR)
	r.Payable = round2(positivePart(r.Tax.Sub(r.Withheld)))
	return r, nil
}

// ISRTax impuesto progresivo; cada producto se redondea antes de sumar.
func ISRTax(base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	if base.LessThanOrEqual(ISRThreshold) {
		return round2(base.Mul(ISRLowRate))
	}
	low := round2(ISRThreshold.Mul(ISRLowRate))
	high := round2(base.Sub(ISRThreshold).Mul(ISRHighRate))
	return round2(low.Add(high))
}

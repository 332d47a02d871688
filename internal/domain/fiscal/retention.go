package fiscal

import (
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RetentionOffset resultado de compensar retenciones contra el saldo del período.
type RetentionOffset struct {
	Payable        decimal.Decimal
	BalanceForward decimal.Decimal
}

// OffsetRetentions aplica las retenciones acumuladas Z = Rp + Rd contra el débito neto.
//
//	D > 0, Z == 0  -> paga D, no arrastra
//	D > 0, Z > 0   -> X = Z - D; X >= 0 arrastra X y no paga; X < 0 paga -X
//	D == 0, Z > 0  -> arrastra Z (haya o no crédito)
//	resto          -> todo cero (incluye C > 0 con Z == 0)
//
// D y C no pueden ser positivos a la vez.
func OffsetRetentions(debits, credits, priorRetention, declaredRetentions decimal.Decimal) (RetentionOffset, error) {
	if debits.IsPositive() && credits.IsPositive() {
		return RetentionOffset{}, &domain.ComputationInconsistencyError{
			Invariant: "débito y crédito excluyentes",
			Detail:    fmt.Sprintf("D=%s C=%s", debits.StringFixed(2), credits.StringFixed(2)),
		}
	}
	z := round2(priorRetention.Add(declaredRetentions))
	out := RetentionOffset{Payable: decimal.Zero, BalanceForward: decimal.Zero}

	switch {
	case debits.IsPositive():
		if !z.IsPositive() {
			out.Payable = round2(debits)
			return out, nil
		}
		x := round2(z.Sub(debits))
		if x.IsNegative() {
			out.Payable = x.Neg()
		} else {
			out.BalanceForward = x
		}
	case credits.IsPositive() && z.IsPositive():
		out.BalanceForward = z
	case z.IsPositive():
		out.BalanceForward = z
	}
	return out, nil
}

// SumCertificates suma los montos retenidos de las constancias vigentes (emitidas o
// pagadas) del tipo indicado.
func SumCertificates(certs []entity.RetentionCertificate, kind entity.RetentionKind) decimal.Decimal {
	sum := decimal.Zero
	for i := range certs {
		c := &certs[i]
		if c.Kind != kind || !c.Counts() {
			continue
		}
		sum = round2(sum.Add(c.WithheldAmount))
	}
	return sum
}

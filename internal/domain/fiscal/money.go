package fiscal

import "github.com/shopspring/decimal"

var (
	one      = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
)

// round2 redondeo monetario aplicado en cada paso intermedio.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// positivePart devuelve max(0, d).
func positivePart(d decimal.Decimal) decimal.Decimal {
	if d.IsPositive() {
		return d
	}
	return decimal.Zero
}

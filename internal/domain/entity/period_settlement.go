package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSettlement liquidación de IVA persistida por empresa y mes.
// Se sobrescribe cada vez que el período se vuelve a liquidar y sirve como
// saldo inicial por defecto del período siguiente.
type PeriodSettlement struct {
	ID                           string
	CompanyID                    string
	Period                       Period
	TotalOutputTax               decimal.Decimal // Débito fiscal del mes
	TotalInputTax                decimal.Decimal // Crédito fiscal (incluye remanente anterior)
	CreditCarryForward           decimal.Decimal // Remanente de crédito para el mes siguiente
	RetentionCarryForward        decimal.Decimal // Saldo de retenciones recibido del mes anterior
	RetentionsDeclaredThisPeriod decimal.Decimal
	RetentionBalanceForward      decimal.Decimal // Saldo de retenciones para el mes siguiente
	TaxPayable                   decimal.Decimal
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido de la operación del documento.
type Direction string

const (
	DirectionSale     Direction = "sale"     // Débito fiscal
	DirectionPurchase Direction = "purchase" // Crédito fiscal
)

// DocumentType tipo de documento tributario electrónico (FEL, Guatemala).
type DocumentType string

const (
	DocTypeInvoice               DocumentType = "FACT" // Factura
	DocTypeExchangeInvoice       DocumentType = "FCAM" // Factura cambiaria
	DocTypeSmallTaxpayerInvoice  DocumentType = "FPEQ" // Factura pequeño contribuyente
	DocTypeSmallTaxpayerExchange DocumentType = "FCAP" // Factura cambiaria pequeño contribuyente
	DocTypeSpecialInvoice        DocumentType = "FESP" // Factura especial
	DocTypeReceipt               DocumentType = "RECI" // Recibo
	DocTypeDonationReceipt       DocumentType = "RDON" // Recibo por donación
	DocTypeCreditNote            DocumentType = "NCRE" // Nota de crédito
	DocTypeDebitNote             DocumentType = "NDEB" // Nota de débito
	DocTypeCreditMemo            DocumentType = "NABN" // Nota de abono
	DocTypeCustomsDeclaration    DocumentType = "DUCA" // Declaración única centroamericana (importaciones)
)

// TransactionCategory tipo de operación que decide el renglón de la declaración.
type TransactionCategory string

const (
	TxGoods               TransactionCategory = "BIEN"
	TxServices            TransactionCategory = "SERVICIO"
	TxGoodsAndServices    TransactionCategory = "BIEN_Y_SERVICIO"
	TxFuels               TransactionCategory = "COMBUSTIBLE"
	TxMedicines           TransactionCategory = "MEDICAMENTO"
	TxNewVehicles         TransactionCategory = "VEHICULO_NUEVO"
	TxOlderVehicles       TransactionCategory = "VEHICULO_MODELO_ANTERIOR"
	TxImportsRegional     TransactionCategory = "IMPORTACION_CENTROAMERICA"
	TxImportsRestOfWorld  TransactionCategory = "IMPORTACION_RESTO_MUNDO"
	TxRegionalAcquisition TransactionCategory = "ADQUISICION_FYDUCA"
	TxFixedAssets         TransactionCategory = "ACTIVO_FIJO"
	TxExport              TransactionCategory = "EXPORTACION"
	TxSmallTaxpayer       TransactionCategory = "PEQUENO_CONTRIBUYENTE"
	TxNoCreditRight       TransactionCategory = "SIN_DERECHO_CREDITO"
	TxExempt              TransactionCategory = "EXENTO"
	TxOther               TransactionCategory = "OTRO"
)

// OtherLevies impuestos específicos detallados en el documento ("otros tributos").
// No afectan el saldo de IVA; solo se reportan en el detalle.
type OtherLevies struct {
	Fuel               decimal.Decimal // Distribución de petróleo y derivados
	TourismLodging     decimal.Decimal // INGUAT hospedaje
	TourismFare        decimal.Decimal // INGUAT pasajes
	PressStamp         decimal.Decimal // Timbre de prensa
	Firefighters       decimal.Decimal // Bomberos
	MunicipalRate      decimal.Decimal // Tasa municipal
	AlcoholicDrinks    decimal.Decimal
	NonAlcoholicDrinks decimal.Decimal
	Tobacco            decimal.Decimal
	Cement             decimal.Decimal
	PortTariff         decimal.Decimal // Tarifa portuaria
}

// Total suma todos los tributos detallados (sin signo).
func (l OtherLevies) Total() decimal.Decimal {
	return decimal.Sum(decimal.Zero,
		l.Fuel, l.TourismLodging, l.TourismFare, l.PressStamp, l.Firefighters,
		l.MunicipalRate, l.AlcoholicDrinks, l.NonAlcoholicDrinks, l.Tobacco,
		l.Cement, l.PortTariff,
	)
}

// FiscalDocument documento de venta o compra registrado para un período.
// Los montos se guardan siempre positivos; el signo lo aplica el clasificador.
type FiscalDocument struct {
	ID                  string
	CompanyID           string
	Direction           Direction
	DocumentType        DocumentType
	TransactionCategory TransactionCategory
	Series              string
	Number              string
	IssueDate           time.Time
	CounterpartyNIT     string
	CounterpartyName    string
	GoodsBase           decimal.Decimal
	ServicesBase        decimal.Decimal
	TaxAmount           decimal.Decimal // IVA del documento
	Levies              OtherLevies
	TotalAmount         decimal.Decimal
	VoidedAt            *time.Time // nil = vigente
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsVoided indica si el documento fue anulado (se excluye de toda agregación).
func (d *FiscalDocument) IsVoided() bool {
	return d.VoidedAt != nil
}

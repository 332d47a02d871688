// Package fiscal contiene el motor de liquidación mensual de IVA e ISR (régimen
// guatemalteco, formulario SAT-2237): taxonomía de renglones, clasificación de
// documentos, agregación por renglón, compensación débito/crédito y retenciones,
// cálculo del ISR opcional mensual y contrato de saldos arrastrados.
//
// Todo el paquete es puro y síncrono: no hace I/O ni guarda estado entre llamadas.
// Los montos se redondean a 2 decimales en cada paso intermedio.
package fiscal

import (
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// VATRate tasa estatutaria del IVA.
var VATRate = decimal.RequireFromString("0.12")

// CategoryCode identifica un renglón de la declaración.
type CategoryCode string

// Renglones de débito (ventas).
const (
	SalesGoods         CategoryCode = "V_BIENES"
	SalesServices      CategoryCode = "V_SERVICIOS"
	SalesFuels         CategoryCode = "V_COMBUSTIBLES"
	SalesMedicines     CategoryCode = "V_MEDICAMENTOS"
	SalesNewVehicles   CategoryCode = "V_VEHICULOS_NUEVOS"
	SalesOlderVehicles CategoryCode = "V_VEHICULOS_ANTERIORES"
	SalesExports       CategoryCode = "V_EXPORTACIONES"
	SalesSmallTaxpayer CategoryCode = "V_PEQUENO_CONTRIBUYENTE"
	SalesExempt        CategoryCode = "V_EXENTAS"
	SalesOther         CategoryCode = "V_OTRAS"
)

// Renglones de crédito (compras).
const (
	PurchaseGoods               CategoryCode = "C_BIENES"
	PurchaseServices            CategoryCode = "C_SERVICIOS"
	PurchaseFuels               CategoryCode = "C_COMBUSTIBLES"
	PurchaseMedicines           CategoryCode = "C_MEDICAMENTOS"
	PurchaseNewVehicles         CategoryCode = "C_VEHICULOS_NUEVOS"
	PurchaseOlderVehicles       CategoryCode = "C_VEHICULOS_ANTERIORES"
	PurchaseImportsRegional     CategoryCode = "C_IMPORTACIONES_CA"
	PurchaseImportsRestOfWorld  CategoryCode = "C_IMPORTACIONES_RESTO"
	PurchaseRegionalAcquisition CategoryCode = "C_ADQUISICIONES_FYDUCA"
	PurchaseFixedAssets         CategoryCode = "C_ACTIVOS_FIJOS"
	PurchaseSmallTaxpayer       CategoryCode = "C_PEQUENO_CONTRIBUYENTE"
	PurchaseNoCreditRight       CategoryCode = "C_SIN_DERECHO_CREDITO"
	PurchaseExempt              CategoryCode = "C_EXENTAS"
	PurchaseOther               CategoryCode = "C_OTRAS"
)

// TotalCode renglón sintético de suma al final de cada tabla.
const TotalCode CategoryCode = "TOTAL"

// BaseField selector del monto base que aporta un documento al renglón.
type BaseField int

const (
	BaseGoods BaseField = iota
	BaseServices
	BaseGoodsAndServices
	BaseTotal
)

// Contribution qué aporta el renglón: base e impuesto, o solo base.
type Contribution int

const (
	ContributesBaseAndTax Contribution = iota
	ContributesBaseOnly
)

// Category fila de la taxonomía. Predicado de inclusión, conjunto de exclusión
// y selector de base en un solo lugar; clasificador y agregador leen esta tabla.
type Category struct {
	Code      CategoryCode
	Direction entity.Direction
	Label     string
	// Matches categorías de operación que caen en este renglón.
	Matches []entity.TransactionCategory
	// Captures tipos de documento que caen aquí sin importar la categoría de operación.
	Captures []entity.DocumentType
	// Excludes tipos de documento que este renglón nunca acepta.
	Excludes     []entity.DocumentType
	Base         BaseField
	Contribution Contribution
	// Mandatory: el renglón aparece aunque sea cero.
	Mandatory bool
	// Exempt: renglón destino de los documentos exentos.
	Exempt bool
	// Fallback: renglón destino de categorías válidas sin renglón propio en la dirección.
	Fallback bool
}

// Tipos de documento de pequeño contribuyente (régimen de tarifa fija, sin crédito).
var SmallTaxpayerDocumentTypes = []entity.DocumentType{
	entity.DocTypeSmallTaxpayerInvoice,
	entity.DocTypeSmallTaxpayerExchange,
}

// Tipos de documento correctivos: invierten el signo de su aporte.
var CorrectiveDocumentTypes = []entity.DocumentType{
	entity.DocTypeCreditNote,
	entity.DocTypeCreditMemo,
}

// Tipos de documento que no gravan IVA.
var ExemptDocumentTypes = []entity.DocumentType{
	entity.DocTypeReceipt,
	entity.DocTypeDonationReceipt,
}

// KnownDocumentTypes catálogo completo de tipos aceptados.
var KnownDocumentTypes = []entity.DocumentType{
	entity.DocTypeInvoice,
	entity.DocTypeExchangeInvoice,
	entity.DocTypeSmallTaxpayerInvoice,
	entity.DocTypeSmallTaxpayerExchange,
	entity.DocTypeSpecialInvoice,
	entity.DocTypeReceipt,
	entity.DocTypeDonationReceipt,
	entity.DocTypeCreditNote,
	entity.DocTypeDebitNote,
	entity.DocTypeCreditMemo,
	entity.DocTypeCustomsDeclaration,
}

// taxBearing categorías de operación que normalmente gravan IVA; un documento
// de estas categorías con IVA cero se trata como exento.
var taxBearing = map[entity.TransactionCategory]bool{
	entity.TxGoods:               true,
	entity.TxServices:            true,
	entity.TxGoodsAndServices:    true,
	entity.TxFuels:               true,
	entity.TxMedicines:           true,
	entity.TxNewVehicles:         true,
	entity.TxOlderVehicles:       true,
	entity.TxImportsRegional:     true,
	entity.TxImportsRestOfWorld:  true,
	entity.TxRegionalAcquisition: true,
	entity.TxFixedAssets:         true,
	entity.TxOther:               true,
}

// knownCategories todas las categorías de operación válidas.
var knownCategories = map[entity.TransactionCategory]bool{
	entity.TxGoods:               true,
	entity.TxServices:            true,
	entity.TxGoodsAndServices:    true,
	entity.TxFuels:               true,
	entity.TxMedicines:           true,
	entity.TxNewVehicles:         true,
	entity.TxOlderVehicles:       true,
	entity.TxImportsRegional:     true,
	entity.TxImportsRestOfWorld:  true,
	entity.TxRegionalAcquisition: true,
	entity.TxFixedAssets:         true,
	entity.TxExport:              true,
	entity.TxSmallTaxpayer:       true,
	entity.TxNoCreditRight:       true,
	entity.TxExempt:              true,
	entity.TxOther:               true,
}

var salesTaxonomy = []Category{
	{Code: SalesGoods, Direction: entity.DirectionSale, Label: "Ventas de bienes",
		Matches: tx(entity.TxGoods), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoods, Mandatory: true},
	{Code: SalesServices, Direction: entity.DirectionSale, Label: "Prestación de servicios",
		Matches: tx(entity.TxServices), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseServices, Mandatory: true},
	{Code: SalesFuels, Direction: entity.DirectionSale, Label: "Ventas de combustibles",
		Matches: tx(entity.TxFuels), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoodsAndServices},
	{Code: SalesMedicines, Direction: entity.DirectionSale, Label: "Ventas de medicamentos genéricos",
		Matches: tx(entity.TxMedicines), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoodsAndServices},
	{Code: SalesNewVehicles, Direction: entity.DirectionSale, Label: "Ventas de vehículos nuevos",
		Matches: tx(entity.TxNewVehicles), Base: BaseGoodsAndServices},
	{Code: SalesOlderVehicles, Direction: entity.DirectionSale, Label: "Ventas de vehículos de modelos anteriores",
		Matches: tx(entity.TxOlderVehicles), Base: BaseGoodsAndServices},
	{Code: SalesExports, Direction: entity.DirectionSale, Label: "Exportaciones",
		Matches: tx(entity.TxExport), Base: BaseGoodsAndServices,
		Contribution: ContributesBaseOnly, Mandatory: true},
	{Code: SalesSmallTaxpayer, Direction: entity.DirectionSale, Label: "Ventas en régimen de pequeño contribuyente",
		Matches: tx(entity.TxSmallTaxpayer), Captures: SmallTaxpayerDocumentTypes,
		Base: BaseTotal, Contribution: ContributesBaseOnly},
	{Code: SalesExempt, Direction: entity.DirectionSale, Label: "Ventas exentas",
		Matches: tx(entity.TxExempt), Base: BaseTotal,
		Contribution: ContributesBaseOnly, Mandatory: true, Exempt: true},
	{Code: SalesOther, Direction: entity.DirectionSale, Label: "Otras ventas",
		Matches: tx(entity.TxOther), Base: BaseGoodsAndServices, Fallback: true},
}

var purchaseTaxonomy = []Category{
	{Code: PurchaseGoods, Direction: entity.DirectionPurchase, Label: "Compras de bienes",
		Matches: tx(entity.TxGoods), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoods, Mandatory: true},
	{Code: PurchaseServices, Direction: entity.DirectionPurchase, Label: "Servicios adquiridos",
		Matches: tx(entity.TxServices), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseServices, Mandatory: true},
	{Code: PurchaseFuels, Direction: entity.DirectionPurchase, Label: "Compras de combustibles",
		Matches: tx(entity.TxFuels), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoodsAndServices, Mandatory: true},
	{Code: PurchaseMedicines, Direction: entity.DirectionPurchase, Label: "Compras de medicamentos genéricos",
		Matches: tx(entity.TxMedicines), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoodsAndServices},
	{Code: PurchaseNewVehicles, Direction: entity.DirectionPurchase, Label: "Compras de vehículos nuevos",
		Matches: tx(entity.TxNewVehicles), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoodsAndServices},
	{Code: PurchaseOlderVehicles, Direction: entity.DirectionPurchase, Label: "Compras de vehículos de modelos anteriores",
		Matches: tx(entity.TxOlderVehicles), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoodsAndServices},
	{Code: PurchaseImportsRegional, Direction: entity.DirectionPurchase, Label: "Importaciones de Centroamérica",
		Matches: tx(entity.TxImportsRegional), Base: BaseGoodsAndServices, Mandatory: true},
	{Code: PurchaseImportsRestOfWorld, Direction: entity.DirectionPurchase, Label: "Importaciones del resto del mundo",
		Matches: tx(entity.TxImportsRestOfWorld), Base: BaseGoodsAndServices, Mandatory: true},
	{Code: PurchaseRegionalAcquisition, Direction: entity.DirectionPurchase, Label: "Adquisiciones con FYDUCA",
		Matches: tx(entity.TxRegionalAcquisition), Base: BaseGoodsAndServices},
	{Code: PurchaseFixedAssets, Direction: entity.DirectionPurchase, Label: "Compra e importación de activos fijos",
		Matches: tx(entity.TxFixedAssets), Excludes: SmallTaxpayerDocumentTypes,
		Base: BaseGoodsAndServices, Mandatory: true},
	{Code: PurchaseSmallTaxpayer, Direction: entity.DirectionPurchase, Label: "Compras a pequeños contribuyentes",
		Matches: tx(entity.TxSmallTaxpayer), Captures: SmallTaxpayerDocumentTypes,
		Base: BaseTotal, Contribution: ContributesBaseOnly, Mandatory: true},
	{Code: PurchaseNoCreditRight, Direction: entity.DirectionPurchase, Label: "Compras sin derecho a crédito fiscal",
		Matches: tx(entity.TxNoCreditRight), Base: BaseTotal, Contribution: ContributesBaseOnly},
	{Code: PurchaseExempt, Direction: entity.DirectionPurchase, Label: "Compras exentas",
		Matches: tx(entity.TxExempt), Base: BaseTotal,
		Contribution: ContributesBaseOnly, Mandatory: true, Exempt: true},
	{Code: PurchaseOther, Direction: entity.DirectionPurchase, Label: "Otras compras",
		Matches: tx(entity.TxOther), Base: BaseGoodsAndServices, Fallback: true},
}

// Taxonomy devuelve las filas de la dirección en el orden fijo de la declaración.
// Devuelve una copia; la tabla no se puede modificar desde fuera.
func Taxonomy(direction entity.Direction) []Category {
	var src []Category
	switch direction {
	case entity.DirectionSale:
		src = salesTaxonomy
	case entity.DirectionPurchase:
		src = purchaseTaxonomy
	default:
		return nil
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// IsKnownCategory informa si la categoría de operación existe en la taxonomía.
func IsKnownCategory(c entity.TransactionCategory) bool {
	return knownCategories[c]
}

// IsKnownDocumentType informa si el tipo de documento existe en el catálogo.
func IsKnownDocumentType(t entity.DocumentType) bool {
	return containsType(KnownDocumentTypes, t)
}

// Accepts evalúa el predicado de inclusión/exclusión de la fila.
func (c Category) Accepts(doc *entity.FiscalDocument) bool {
	if containsType(c.Excludes, doc.DocumentType) {
		return false
	}
	if containsType(c.Captures, doc.DocumentType) {
		return true
	}
	for _, m := range c.Matches {
		if m == doc.TransactionCategory {
			return true
		}
	}
	return false
}

// BaseOf devuelve la base sin signo que el documento aporta a esta fila.
func (c Category) BaseOf(doc *entity.FiscalDocument) decimal.Decimal {
	switch c.Base {
	case BaseGoods:
		return doc.GoodsBase
	case BaseServices:
		return doc.ServicesBase
	case BaseTotal:
		return doc.TotalAmount
	default:
		return doc.GoodsBase.Add(doc.ServicesBase)
	}
}

func tx(cs ...entity.TransactionCategory) []entity.TransactionCategory { return cs }

func containsType(list []entity.DocumentType, t entity.DocumentType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

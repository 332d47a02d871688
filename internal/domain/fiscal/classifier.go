package fiscal

import (
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Allocation aporte firmado de un documento a un renglón.
type Allocation struct {
	Category CategoryCode
	Base     decimal.Decimal
	Tax      decimal.Decimal
}

// Classify asigna el documento a un renglón (o a dos, si es mixto bienes y servicios)
// con base e impuesto ya firmados y redondeados.
//
// Precedencia:
//  1. anulado: no aporta nada
//  2. tipo de documento capturado por un renglón (pequeño contribuyente)
//  3. exento: renglón de exentas con el total como base
//  4. bienes y servicios: prorrateo en dos aportes con IVA recalculado a la tasa estatutaria
//  5. renglón cuya categoría coincide (respetando exclusiones)
//  6. renglón "otras" de la dirección
func Classify(doc *entity.FiscalDocument) ([]Allocation, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	if doc.IsVoided() {
		return nil, nil
	}
	rows := Taxonomy(doc.Direction)
	sign := Sign(doc)

	for _, c := range rows {
		if containsType(c.Captures, doc.DocumentType) {
			return []Allocation{allocate(c, doc, sign)}, nil
		}
	}

	if IsExempt(doc) {
		c, err := pick(rows, doc, func(c Category) bool { return c.Exempt })
		if err != nil {
			return nil, err
		}
		return []Allocation{allocate(c, doc, sign)}, nil
	}

	if doc.TransactionCategory == entity.TxGoodsAndServices {
		return splitMixed(rows, doc, sign)
	}

	for _, c := range rows {
		if c.Accepts(doc) {
			return []Allocation{allocate(c, doc, sign)}, nil
		}
	}

	c, err := pick(rows, doc, func(c Category) bool { return c.Fallback })
	if err != nil {
		return nil, err
	}
	return []Allocation{allocate(c, doc, sign)}, nil
}

// Sign -1 para documentos correctivos (notas de crédito/abono), +1 para el resto.
func Sign(doc *entity.FiscalDocument) decimal.Decimal {
	if IsCorrective(doc) {
		return minusOne
	}
	return one
}

// IsCorrective informa si el documento revierte una operación previa.
func IsCorrective(doc *entity.FiscalDocument) bool {
	return containsType(CorrectiveDocumentTypes, doc.DocumentType)
}

// IsExempt un documento es exento si su categoría es exenta, su tipo no grava IVA,
// o pertenece a una categoría gravada pero trae IVA cero.
func IsExempt(doc *entity.FiscalDocument) bool {
	if doc.TransactionCategory == entity.TxExempt {
		return true
	}
	if containsType(ExemptDocumentTypes, doc.DocumentType) {
		return true
	}
	return taxBearing[doc.TransactionCategory] && doc.TaxAmount.IsZero()
}

// SignedBase base gravable (bienes + servicios) con signo; cero si está anulado.
func SignedBase(doc *entity.FiscalDocument) decimal.Decimal {
	if doc.IsVoided() {
		return decimal.Zero
	}
	return round2(doc.GoodsBase.Add(doc.ServicesBase).Mul(Sign(doc)))
}

// SignedOtherLevies total de otros tributos con signo; solo informativo.
func SignedOtherLevies(doc *entity.FiscalDocument) decimal.Decimal {
	if doc.IsVoided() {
		return decimal.Zero
	}
	return round2(doc.Levies.Total().Mul(Sign(doc)))
}

func allocate(c Category, doc *entity.FiscalDocument, sign decimal.Decimal) Allocation {
	a := Allocation{
		Category: c.Code,
		Base:     round2(c.BaseOf(doc).Mul(sign)),
		Tax:      decimal.Zero,
	}
	if c.Contribution == ContributesBaseAndTax {
		a.Tax = round2(doc.TaxAmount.Mul(sign))
	}
	return a
}

// splitMixed separa el documento en un aporte de bienes y otro de servicios.
// El IVA del documento no se usa: se recalcula por porción para que ambas sean consistentes.
func splitMixed(rows []Category, doc *entity.FiscalDocument, sign decimal.Decimal) ([]Allocation, error) {
	goods, err := pick(rows, doc, func(c Category) bool {
		return matchesCategory(c, entity.TxGoods) && !containsType(c.Excludes, doc.DocumentType)
	})
	if err != nil {
		return nil, err
	}
	services, err := pick(rows, doc, func(c Category) bool {
		return matchesCategory(c, entity.TxServices) && !containsType(c.Excludes, doc.DocumentType)
	})
	if err != nil {
		return nil, err
	}
	return []Allocation{
		{
			Category: goods.Code,
			Base:     round2(doc.GoodsBase.Mul(sign)),
			Tax:      round2(doc.GoodsBase.Mul(VATRate)).Mul(sign),
		},
		{
			Category: services.Code,
			Base:     round2(doc.ServicesBase.Mul(sign)),
			Tax:      round2(doc.ServicesBase.Mul(VATRate)).Mul(sign),
		},
	}, nil
}

func pick(rows []Category, doc *entity.FiscalDocument, pred func(Category) bool) (Category, error) {
	for _, c := range rows {
		if pred(c) {
			return c, nil
		}
	}
	return Category{}, &domain.ComputationInconsistencyError{
		Invariant: "taxonomía completa",
		Detail:    fmt.Sprintf("sin renglón destino para el documento %s (%s/%s)", doc.ID, doc.Direction, doc.TransactionCategory),
	}
}

func matchesCategory(c Category, tc entity.TransactionCategory) bool {
	for _, m := range c.Matches {
		if m == tc {
			return true
		}
	}
	return false
}

package fiscal

import (
	"errors"
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ValidateDocument rechaza el documento antes de clasificarlo si su categoría no
// existe en la taxonomía, el tipo o la dirección son desconocidos, o algún monto es negativo.
func ValidateDocument(doc *entity.FiscalDocument) error {
	if doc == nil {
		return &domain.InvalidDocumentError{Reason: "documento nulo"}
	}
	invalid := func(format string, args ...any) error {
		return &domain.InvalidDocumentError{DocumentID: doc.ID, Reason: fmt.Sprintf(format, args...)}
	}
	if doc.Direction != entity.DirectionSale && doc.Direction != entity.DirectionPurchase {
		return invalid("dirección desconocida %q", doc.Direction)
	}
	if !IsKnownCategory(doc.TransactionCategory) {
		return invalid("categoría de operación fuera de la taxonomía %q", doc.TransactionCategory)
	}
	if !IsKnownDocumentType(doc.DocumentType) {
		return invalid("tipo de documento desconocido %q", doc.DocumentType)
	}
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"total", doc.TotalAmount},
		{"base de bienes", doc.GoodsBase},
		{"base de servicios", doc.ServicesBase},
		{"IVA", doc.TaxAmount},
		{"otros tributos", doc.Levies.Total()},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return invalid("monto %s negativo (%s)", a.name, a.value.String())
		}
	}
	return nil
}

// ValidateDocuments valida todos los documentos y agrupa los errores.
func ValidateDocuments(docs []entity.FiscalDocument) error {
	var errs []error
	for i := range docs {
		if err := ValidateDocument(&docs[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

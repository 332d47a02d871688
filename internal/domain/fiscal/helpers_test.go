package fiscal_test

import (
	"fmt"
	"time"

	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

var docSeq int

// newDoc arma un documento con total = bienes + servicios + IVA.
func newDoc(dir entity.Direction, typ entity.DocumentType, cat entity.TransactionCategory, goods, services, tax string) entity.FiscalDocument {
	docSeq++
	g, s, t := dec(goods), dec(services), dec(tax)
	return entity.FiscalDocument{
		ID:                  fmt.Sprintf("doc-%03d", docSeq),
		CompanyID:           "empresa-1",
		Direction:           dir,
		DocumentType:        typ,
		TransactionCategory: cat,
		Series:              "A",
		Number:              fmt.Sprintf("%d", docSeq),
		IssueDate:           time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		GoodsBase:           g,
		ServicesBase:        s,
		TaxAmount:           t,
		TotalAmount:         g.Add(s).Add(t),
	}
}

func sale(cat entity.TransactionCategory, goods, services, tax string) entity.FiscalDocument {
	return newDoc(entity.DirectionSale, entity.DocTypeInvoice, cat, goods, services, tax)
}

func purchase(cat entity.TransactionCategory, goods, services, tax string) entity.FiscalDocument {
	return newDoc(entity.DirectionPurchase, entity.DocTypeInvoice, cat, goods, services, tax)
}

func voided(d entity.FiscalDocument) entity.FiscalDocument {
	at := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	d.VoidedAt = &at
	return d
}

func withType(d entity.FiscalDocument, typ entity.DocumentType) entity.FiscalDocument {
	d.DocumentType = typ
	return d
}

func cert(kind entity.RetentionKind, status entity.CertificateStatus, amount string) entity.RetentionCertificate {
	return entity.RetentionCertificate{
		ID:             "cert-" + amount,
		CompanyID:      "empresa-1",
		Kind:           kind,
		Status:         status,
		WithheldAmount: dec(amount),
	}
}

// snapshot representación estable de una tabla para comparar corridas.
func snapshot(t fiscal.BucketTable) []string {
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, fmt.Sprintf("%s|%s|%s|%d", r.Category, r.Base.StringFixed(2), r.Tax.StringFixed(2), r.Documents))
	}
	return out
}

package fiscal

import (
	"fmt"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CategoryBucket totales de un renglón para una corrida; no se persiste.
type CategoryBucket struct {
	Category  CategoryCode
	Label     string
	Base      decimal.Decimal
	Tax       decimal.Decimal
	Documents int
	// Synthetic marca la fila TOTAL.
	Synthetic bool
}

// BucketTable renglones de una dirección en el orden fijo de la taxonomía,
// terminando en la fila sintética TOTAL.
type BucketTable struct {
	Direction entity.Direction
	Rows      []CategoryBucket
}

// Categories filas reales, sin la fila TOTAL.
func (t BucketTable) Categories() []CategoryBucket {
	out := make([]CategoryBucket, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !r.Synthetic {
			out = append(out, r)
		}
	}
	return out
}

// Total fila sintética; cero si la tabla está vacía.
func (t BucketTable) Total() CategoryBucket {
	for _, r := range t.Rows {
		if r.Synthetic {
			return r
		}
	}
	return CategoryBucket{Category: TotalCode, Label: "Total", Synthetic: true}
}

// Find busca un renglón por código.
func (t BucketTable) Find(code CategoryCode) (CategoryBucket, bool) {
	for _, r := range t.Rows {
		if r.Category == code {
			return r, true
		}
	}
	return CategoryBucket{}, false
}

// TaxTotal suma firmada del impuesto de todas las filas reales.
func (t BucketTable) TaxTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range t.Categories() {
		sum = round2(sum.Add(r.Tax))
	}
	return sum
}

// Aggregate acumula los documentos de una dirección por renglón. Los renglones
// obligatorios siempre aparecen; los opcionales solo si algún documento cae en ellos.
// El resultado no depende del orden de los documentos.
func Aggregate(docs []entity.FiscalDocument, direction entity.Direction) (BucketTable, error) {
	rows := Taxonomy(direction)
	if rows == nil {
		return BucketTable{}, fmt.Errorf("%w: dirección desconocida %q", domain.ErrInvalidInput, direction)
	}
	if err := ValidateDocuments(docs); err != nil {
		return BucketTable{}, err
	}

	acc := make(map[CategoryCode]*CategoryBucket, len(rows))
	counted := 0
	for i := range docs {
		doc := &docs[i]
		if doc.Direction != direction {
			return BucketTable{}, &domain.InvalidDocumentError{
				DocumentID: doc.ID,
				Reason:     fmt.Sprintf("dirección %s en una tabla de %s", doc.Direction, direction),
			}
		}
		allocs, err := Classify(doc)
		if err != nil {
			return BucketTable{}, err
		}
		if len(allocs) > 0 {
			counted++
		}
		for _, a := range allocs {
			b, ok := acc[a.Category]
			if !ok {
				b = &CategoryBucket{Category: a.Category}
				acc[a.Category] = b
			}
			b.Base = b.Base.Add(a.Base)
			b.Tax = b.Tax.Add(a.Tax)
			b.Documents++
		}
	}

	table := BucketTable{Direction: direction, Rows: make([]CategoryBucket, 0, len(rows)+1)}
	// Un documento mixto aparece en dos renglones pero cuenta una sola vez en el total.
	total := CategoryBucket{Category: TotalCode, Label: "Total", Synthetic: true, Documents: counted}
	for _, c := range rows {
		b, ok := acc[c.Code]
		if !ok && !c.Mandatory {
			continue
		}
		row := CategoryBucket{Category: c.Code, Label: c.Label}
		if ok {
			row.Base = round2(b.Base)
			row.Tax = round2(b.Tax)
			row.Documents = b.Documents
		}
		total.Base = round2(total.Base.Add(row.Base))
		total.Tax = round2(total.Tax.Add(row.Tax))
		table.Rows = append(table.Rows, row)
	}
	table.Rows = append(table.Rows, total)
	return table, nil
}

// DocumentSummary conteos y montos informativos de una dirección.
type DocumentSummary struct {
	Direction        entity.Direction
	Documents        int
	DocumentsTotal   decimal.Decimal
	CreditNotes      int
	CreditNotesTotal decimal.Decimal
	Voided           int
	OtherLevies      decimal.Decimal
}

// Summarize cuenta documentos vigentes, notas correctivas y anulados de la dirección.
// Los totales de notas se reportan en positivo; otros tributos va con signo.
func Summarize(docs []entity.FiscalDocument, direction entity.Direction) DocumentSummary {
	s := DocumentSummary{Direction: direction}
	for i := range docs {
		doc := &docs[i]
		if doc.Direction != direction {
			continue
		}
		if doc.IsVoided() {
			s.Voided++
			continue
		}
		if IsCorrective(doc) {
			s.CreditNotes++
			s.CreditNotesTotal = round2(s.CreditNotesTotal.Add(doc.TotalAmount))
		} else {
			s.Documents++
			s.DocumentsTotal = round2(s.DocumentsTotal.Add(doc.TotalAmount))
		}
		s.OtherLevies = round2(s.OtherLevies.Add(SignedOtherLevies(doc)))
	}
	return s
}

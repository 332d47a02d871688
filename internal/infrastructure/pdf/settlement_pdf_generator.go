// Package pdf genera el reporte de liquidación mensual de IVA en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Período + estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA VENTAS: Renglón | Docs | Base | IVA                   │
//	│  TABLA COMPRAS: Renglón | Docs | Base | IVA                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN IVA: débitos, créditos, retenciones, a pagar        │
//	│  DOCUMENTOS RECTIFICATIVOS Y ANULADOS                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/cierre-fiscal/internal/application/settlement"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ settlement.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa settlement.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador con formato de montos es-GT.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.MustParse("es-GT"))}
}

// GenerateSettlementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSettlementPDF(_ context.Context, r *settlement.Report) ([]byte, error) {
	if r == nil || r.Company == nil {
		return nil, fmt.Errorf("pdf: reporte sin empresa")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Liquidación de IVA "+r.Period.String(), true).
		WithAuthor(r.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("DÉBITOS: VENTAS Y SERVICIOS PRESTADOS"))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.bucketRows(r.Result.SalesBuckets)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("CRÉDITOS: COMPRAS Y SERVICIOS ADQUIRIDOS"))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.bucketRows(r.Result.PurchaseBuckets)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("DETERMINACIÓN DEL IMPUESTO"))
	m.AddRows(g.vatRows(r.Result.VAT)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("DOCUMENTOS RECTIFICATIVOS Y ANULADOS"))
	m.AddRows(g.summaryRow("Ventas", r.Result.SalesSummary))
	m.AddRows(g.summaryRow("Compras", r.Result.PurchaseSummary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y período + estado (der).
func headerRow(r *settlement.Report) core.Row {
	status := "BORRADOR"
	if r.Committed {
		status = "CONFIRMADA"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+r.Company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("LIQUIDACIÓN MENSUAL DE IVA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Período "+r.Period.String(), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(status+" · saldos iniciales: "+r.OpeningSource, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Renglón", 6, align.Left),
		h("Docs.", 1, align.Center),
		h("Base", 3, align.Right),
		h("IVA", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// bucketRows una fila por renglón; el total en negrita.
func (g *MarotoPDFGenerator) bucketRows(t fiscal.BucketTable) []core.Row {
	out := make([]core.Row, 0, len(t.Rows))
	for _, b := range t.Rows {
		style := fontstyle.Normal
		if b.Synthetic {
			style = fontstyle.Bold
		}
		out = append(out, row.New(6).Add(
			col.New(6).Add(text.New(b.Label, props.Text{Size: 8, Style: style, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprint(b.Documents), props.Text{Size: 8, Style: style, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(g.money(b.Base), props.Text{Size: 8, Style: style, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(b.Tax), props.Text{Size: 8, Style: style, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func (g *MarotoPDFGenerator) vatRows(v fiscal.VATResult) []core.Row {
	lines := []struct {
		label string
		value decimal.Decimal
		grand bool
	}{
		{"Débito fiscal del período", v.TotalOutputTax, false},
		{"Crédito fiscal por compras", v.PurchaseInputTax, false},
		{"Remanente de crédito del período anterior", v.PriorCredit, false},
		{"Crédito por constancias de exención", v.ExemptionCertificateCredit, false},
		{"Total crédito fiscal", v.TotalInputTax, false},
		{"Diferencia: débitos mayores que créditos", v.DebitsExceedCredits, false},
		{"Diferencia: créditos mayores que débitos", v.CreditsExceedDebits, false},
		{"Retenciones declaradas en el período", v.DeclaredRetentions, false},
		{"Saldo de retenciones del período anterior", v.PriorRetention, false},
		{"Saldo de retenciones para el período siguiente", v.RetentionBalanceForward, false},
		{"Remanente de crédito para el período siguiente", v.CreditCarryForward, false},
		{"IMPUESTO A PAGAR", v.TaxPayable, true},
	}
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if l.grand {
			p = props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Right: 1, Top: 1, Color: colorPrimary}
		}
		lp := p
		lp.Right = 2
		out = append(out, row.New(6).Add(
			col.New(2),
			col.New(7).Add(text.New(l.label+":", lp)),
			col.New(3).Add(text.New(g.money(l.value), p)),
		))
	}
	return out
}

func (g *MarotoPDFGenerator) summaryRow(label string, s fiscal.DocumentSummary) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(
		fmt.Sprintf("%s: %d documentos (%s) · %d notas de crédito (%s) · %d anulados · otros tributos %s",
			label, s.Documents, g.money(s.DocumentsTotal),
			s.CreditNotes, g.money(s.CreditNotesTotal),
			s.Voided, g.money(s.OtherLevies)),
		props.Text{Size: 8, Color: colorGray, Top: 1},
	)))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea en quetzales con separadores de la localidad, dos decimales.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("Q %v", number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

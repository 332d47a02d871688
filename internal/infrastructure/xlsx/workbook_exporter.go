// Package xlsx exporta la liquidación a un libro Excel con las hojas
// Ventas, Compras y Resumen.
package xlsx

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/cierre-fiscal/internal/application/settlement"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
)

// Nombres de hoja.
const (
	SheetSales     = "Ventas"
	SheetPurchases = "Compras"
	SheetSummary   = "Resumen"
)

var _ settlement.WorkbookExporter = (*WorkbookExporter)(nil)

// WorkbookExporter implementa settlement.WorkbookExporter con excelize.
type WorkbookExporter struct{}

// NewWorkbookExporter crea el exportador.
func NewWorkbookExporter() *WorkbookExporter { return &WorkbookExporter{} }

// ExportSettlementWorkbook arma el libro y devuelve sus bytes.
func (e *WorkbookExporter) ExportSettlementWorkbook(_ context.Context, r *settlement.Report) ([]byte, error) {
	if r == nil || r.Company == nil {
		return nil, fmt.Errorf("xlsx: reporte sin empresa")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// La hoja por defecto "Sheet1" pasa a ser Ventas.
	if err := f.SetSheetName(f.GetSheetName(0), SheetSales); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetPurchases); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja %s: %w", SheetPurchases, err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja %s: %w", SheetSummary, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := writeBuckets(f, SheetSales, r, r.Result.SalesBuckets, bold); err != nil {
		return nil, err
	}
	if err := writeBuckets(f, SheetPurchases, r, r.Result.PurchaseBuckets, bold); err != nil {
		return nil, err
	}
	if err := writeSummary(f, r, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBuckets encabezado en la fila 3, renglones desde la 4.
func writeBuckets(f *excelize.File, sheet string, r *settlement.Report, t fiscal.BucketTable, bold int) error {
	if err := writeHeader(f, sheet, r); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A3", &[]any{"Código", "Renglón", "Documentos", "Base", "IVA"}); err != nil {
		return fmt.Errorf("xlsx: encabezado %s: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 3, 3, bold); err != nil {
		return fmt.Errorf("xlsx: estilo %s: %w", sheet, err)
	}
	for i, b := range t.Rows {
		rowNum := i + 4
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		values := []any{string(b.Category), b.Label, b.Documents, amount(b.Base), amount(b.Tax)}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", rowNum, sheet, err)
		}
		if b.Synthetic {
			if err := f.SetRowStyle(sheet, rowNum, rowNum, bold); err != nil {
				return fmt.Errorf("xlsx: estilo %s: %w", sheet, err)
			}
		}
	}
	return f.SetColWidth(sheet, "B", "B", 48)
}

func writeSummary(f *excelize.File, r *settlement.Report, bold int) error {
	if err := writeHeader(f, SheetSummary, r); err != nil {
		return err
	}
	v := r.Result.VAT
	lines := []struct {
		label string
		value decimal.Decimal
	}{
		{"Débito fiscal", v.TotalOutputTax},
		{"Crédito fiscal por compras", v.PurchaseInputTax},
		{"Remanente de crédito anterior", v.PriorCredit},
		{"Crédito por constancias de exención", v.ExemptionCertificateCredit},
		{"Total crédito fiscal", v.TotalInputTax},
		{"Débitos mayores que créditos", v.DebitsExceedCredits},
		{"Créditos mayores que débitos", v.CreditsExceedDebits},
		{"Retenciones según constancias", v.CertifiedRetentions},
		{"Retenciones declaradas", v.DeclaredRetentions},
		{"Saldo de retenciones anterior", v.PriorRetention},
		{"Saldo de retenciones siguiente", v.RetentionBalanceForward},
		{"Remanente de crédito siguiente", v.CreditCarryForward},
		{"Impuesto a pagar", v.TaxPayable},
	}
	for i, l := range lines {
		rowNum := i + 3
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetSummary, cell, &[]any{l.label, amount(l.value)}); err != nil {
			return fmt.Errorf("xlsx: resumen fila %d: %w", rowNum, err)
		}
	}
	last := len(lines) + 2
	if err := f.SetRowStyle(SheetSummary, last, last, bold); err != nil {
		return fmt.Errorf("xlsx: estilo resumen: %w", err)
	}
	return f.SetColWidth(SheetSummary, "A", "A", 40)
}

// writeHeader fila 1: empresa, NIT y período.
func writeHeader(f *excelize.File, sheet string, r *settlement.Report) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{r.Company.Name, "NIT " + r.Company.NIT, r.Period.String()}); err != nil {
		return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
	}
	return nil
}

// amount valor numérico con dos decimales para que Excel pueda sumar.
func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

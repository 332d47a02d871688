package settlement

import "context"

// ReportPDFGenerator genera el reporte de liquidación en PDF.
type ReportPDFGenerator interface {
	GenerateSettlementPDF(ctx context.Context, r *Report) ([]byte, error)
}

// WorkbookExporter exporta libros de ventas/compras y resumen a XLSX.
type WorkbookExporter interface {
	ExportSettlementWorkbook(ctx context.Context, r *Report) ([]byte, error)
}

// FormBuilder arma la declaración SAT-2237 en XML.
type FormBuilder interface {
	BuildDeclaration(ctx context.Context, r *Report) ([]byte, error)
}

// Exporters agrupa los adaptadores de salida; cualquiera puede ser nil si no se configura.
type Exporters struct {
	PDF      ReportPDFGenerator
	Workbook WorkbookExporter
	Form     FormBuilder
}

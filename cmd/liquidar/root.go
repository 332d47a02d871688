package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cierre-fiscal/internal/application/settlement"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/cierre-fiscal/internal/infrastructure/pdf"
	"github.com/jhoicas/cierre-fiscal/internal/infrastructure/sat"
	"github.com/jhoicas/cierre-fiscal/internal/infrastructure/xlsx"
	"github.com/jhoicas/cierre-fiscal/pkg/logger"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "liquidar",
		Short: "Liquidación mensual de IVA e ISR (Guatemala) fuera de línea",
		Long: `liquidar lee un archivo JSON con la empresa, el período, los documentos
fiscales, las constancias de retención y opcionalmente los saldos del mes
anterior, y calcula la liquidación con el mismo motor que la API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("input", "i", "", "Archivo JSON de entrada")
	root.PersistentFlags().String("log-level", "warn", "Nivel de log (trace, debug, info, warn, error)")
	_ = root.MarkPersistentFlagRequired("input")

	root.AddCommand(newVATCmd(), newISRCmd())
	return root
}

// engine caso de uso armado sobre repositorios en memoria cargados con el archivo.
type engine struct {
	uc    *settlement.UseCase
	input *Input
}

func loadEngine(cmd *cobra.Command) (*engine, error) {
	path, _ := cmd.Flags().GetString("input")
	level, _ := cmd.Flags().GetString("log-level")

	in, err := readInput(path)
	if err != nil {
		return nil, err
	}
	period, err := entity.ParsePeriod(in.Period)
	if err != nil {
		return nil, err
	}

	companies := memory.NewCompanyRepo()
	companies.Put(entity.Company{ID: in.Company.ID, Name: in.Company.Name, NIT: in.Company.NIT, Status: "active"})

	documents := memory.NewDocumentRepo()
	for _, d := range in.Documents {
		doc, err := d.toEntity(in.Company.ID)
		if err != nil {
			return nil, err
		}
		if !period.Contains(doc.IssueDate) {
			return nil, fmt.Errorf("documento %s: fecha %s fuera del período %s", doc.ID, d.IssueDate, period)
		}
		documents.Add(doc)
	}

	certs := memory.NewCertificateRepo()
	for _, c := range in.Certificates {
		cert, err := c.toEntity(in.Company.ID)
		if err != nil {
			return nil, err
		}
		if !period.Contains(cert.IssueDate) {
			return nil, fmt.Errorf("constancia %s: fecha %s fuera del período %s", cert.ID, c.IssueDate, period)
		}
		certs.Add(cert)
	}

	settlements := memory.NewSettlementRepo()
	if p := in.PriorSettlement; p != nil {
		err := settlements.Upsert(context.Background(), &entity.PeriodSettlement{
			CompanyID:               in.Company.ID,
			Period:                  period.Previous(),
			CreditCarryForward:      p.CreditCarryForward,
			RetentionBalanceForward: p.RetentionBalanceForward,
		})
		if err != nil {
			return nil, err
		}
	}

	exporters := settlement.Exporters{
		PDF:      infrapdf.NewMarotoPDFGenerator(),
		Workbook: xlsx.NewWorkbookExporter(),
		Form:     sat.NewDeclarationBuilder(),
	}
	log := logger.NewWriter(cmd.ErrOrStderr(), level)
	return &engine{
		uc:    settlement.NewUseCase(companies, documents, certs, settlements, exporters, log),
		input: in,
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("escribir resultado: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cierre-fiscal/internal/application/dto"
)

func newVATCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iva",
		Short: "Calcula la liquidación de IVA del período",
		Example: `  # Resumen en JSON por stdout
  liquidar iva --input marzo.json

  # Además genera el PDF, el libro XLSX y el formulario SAT-2237
  liquidar iva --input marzo.json --pdf marzo.pdf --xlsx marzo.xlsx --xml marzo.xml`,
		RunE: runVAT,
	}
	cmd.Flags().String("pdf", "", "Ruta del reporte PDF")
	cmd.Flags().String("xlsx", "", "Ruta del libro XLSX")
	cmd.Flags().String("xml", "", "Ruta del formulario SAT-2237")
	return cmd
}

func runVAT(cmd *cobra.Command, _ []string) error {
	e, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()
	companyID := e.input.Company.ID
	req := dto.SettlementRequest{Period: e.input.Period, Overrides: e.input.Overrides}

	report, err := e.uc.Compute(ctx, companyID, req)
	if err != nil {
		return err
	}

	outputs := []struct {
		flag   string
		render func(context.Context, string, dto.SettlementRequest) ([]byte, string, error)
	}{
		{"pdf", e.uc.RenderPDF},
		{"xlsx", e.uc.RenderWorkbook},
		{"xml", e.uc.RenderForm},
	}
	for _, o := range outputs {
		path, _ := cmd.Flags().GetString(o.flag)
		if path == "" {
			continue
		}
		data, _, err := o.render(ctx, companyID, req)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", path, err)
		}
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

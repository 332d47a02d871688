package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newISRCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "isr",
		Short:   "Calcula el ISR mensual del régimen opcional",
		Example: `  liquidar isr --input marzo.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			res, err := e.uc.ComputeISR(context.Background(), e.input.Company.ID, e.input.Period)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}
